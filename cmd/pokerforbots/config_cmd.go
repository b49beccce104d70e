package main

import (
	"encoding/json"
	"fmt"
)

// ShowConfigCmd prints the fully resolved configuration (defaults applied)
// as indented JSON, so a user can confirm what an HCL file actually
// resolved to before running a match against it.
type ShowConfigCmd struct{}

func (c *ShowConfigCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
