package llm

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// GatewayClient is the default ChatCompleter: a single persistent
// websocket connection to a model gateway, multiplexing concurrent
// Complete calls (one per seat's pipeline) by request id.
//
// Grounded on sdk/ws_client.go's WSClient: Dial once, a background
// readMessages loop dispatching by message type/id, guarded by a
// sync.RWMutex. The teacher's client is a fire-and-forget event bus
// (SendMessage + AddEventHandler); GatewayClient adapts the same
// connect/read-loop/dispatch shape into a synchronous request/response
// RPC by correlating responses to pending callers via a channel map,
// since spec.md's chat-completion seam is a single blocking call.
//
// The actual wire protocol (request/response envelope shape) is not
// prescribed by spec.md - section 1 treats the provider transport as
// opaque - so the envelope here is this repo's own minimal JSON framing
// over gorilla/websocket, the only bidirectional transport the corpus
// uses.
type GatewayClient struct {
	url    string
	logger *log.Logger

	mu      sync.Mutex
	conn    *websocket.Conn
	pending map[string]chan gatewayResponse

	nextID atomic.Uint64
}

type gatewayRequest struct {
	ID          string           `json:"id"`
	Model       string           `json:"model"`
	Messages    []Message        `json:"messages"`
	Temperature float64          `json:"temperature"`
	Tools       []ToolDescriptor `json:"tools,omitempty"`
	ToolChoice  ToolChoice       `json:"tool_choice"`
}

type gatewayResponse struct {
	ID           string  `json:"id"`
	Message      Message `json:"message"`
	PromptTokens int     `json:"prompt_tokens"`
	CompTokens   int     `json:"completion_tokens"`
	TotalTokens  int     `json:"total_tokens"`
	CostEstimate float64 `json:"cost_estimate"`
	Error        string  `json:"error,omitempty"`
}

// NewGatewayClient builds a client for the given gateway URL (ws:// or
// wss://, http(s):// is upgraded automatically). The connection is
// established lazily on first Complete call.
func NewGatewayClient(gatewayURL string, logger *log.Logger) *GatewayClient {
	if logger == nil {
		logger = log.Default()
	}
	return &GatewayClient{
		url:     gatewayURL,
		logger:  logger.WithPrefix("llm-gateway"),
		pending: make(map[string]chan gatewayResponse),
	}
}

func (c *GatewayClient) ensureConnected() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return nil
	}

	u, err := url.Parse(c.url)
	if err != nil {
		return fmt.Errorf("llm: invalid gateway URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		u.Scheme = "ws"
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("llm: failed to connect to gateway: %w", err)
	}
	c.conn = conn
	go c.readLoop(conn)
	return nil
}

func (c *GatewayClient) readLoop(conn *websocket.Conn) {
	for {
		var resp gatewayResponse
		if err := conn.ReadJSON(&resp); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("gateway connection error", "error", err)
			}
			c.mu.Lock()
			for id, ch := range c.pending {
				close(ch)
				delete(c.pending, id)
			}
			c.conn = nil
			c.mu.Unlock()
			return
		}

		c.mu.Lock()
		ch, ok := c.pending[resp.ID]
		if ok {
			delete(c.pending, resp.ID)
		}
		c.mu.Unlock()
		if ok {
			ch <- resp
			close(ch)
		}
	}
}

// Complete implements ChatCompleter.
func (c *GatewayClient) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	if err := c.ensureConnected(); err != nil {
		return CompletionResponse{}, err
	}

	id := fmt.Sprintf("%d", c.nextID.Add(1))
	ch := make(chan gatewayResponse, 1)

	c.mu.Lock()
	conn := c.conn
	c.pending[id] = ch
	c.mu.Unlock()

	if conn == nil {
		return CompletionResponse{}, fmt.Errorf("llm: gateway not connected")
	}
	if err := conn.WriteJSON(gatewayRequest{
		ID:          id,
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		Tools:       req.Tools,
		ToolChoice:  req.ToolChoice,
	}); err != nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return CompletionResponse{}, fmt.Errorf("llm: failed to send request: %w", err)
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return CompletionResponse{}, fmt.Errorf("llm: gateway connection closed while awaiting response")
		}
		if resp.Error != "" {
			return CompletionResponse{}, fmt.Errorf("llm: gateway error: %s", resp.Error)
		}
		return CompletionResponse{
			Message: resp.Message,
			Usage: Usage{
				PromptTokens:     resp.PromptTokens,
				CompletionTokens: resp.CompTokens,
				TotalTokens:      resp.TotalTokens,
			},
			CostEstimate: resp.CostEstimate,
		}, nil
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return CompletionResponse{}, ctx.Err()
	}
}

// Close closes the gateway connection, if open.
func (c *GatewayClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	err := c.conn.Close()
	c.conn = nil
	return err
}
