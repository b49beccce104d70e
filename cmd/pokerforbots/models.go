package main

import "fmt"

// ModelsCmd lists every model configured in the arena file.
type ModelsCmd struct{}

func (c *ModelsCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}
	if len(cfg.Models) == 0 {
		fmt.Println("no models configured")
		return nil
	}
	for _, m := range cfg.Models {
		fmt.Printf("%-20s gateway=%-40s temperature=%.2f\n", m.Name, m.GatewayURL, m.Temperature)
	}
	return nil
}
