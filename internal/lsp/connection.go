package lsp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Connection handles LSP message reading and writing. Writes are
// serialized so diagnostics notifications can interleave with responses.
type Connection struct {
	reader *bufio.Reader
	mu     sync.Mutex
	writer io.Writer
}

// NewConnection creates a new LSP connection
func NewConnection(reader io.Reader, writer io.Writer) *Connection {
	return &Connection{
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// ReadMessage reads one Content-Length framed LSP message
func (c *Connection) ReadMessage() (*Message, error) {
	headers := make(map[string]string)
	for {
		line, err := c.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			break // End of headers
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}

	contentLengthStr, exists := headers["Content-Length"]
	if !exists {
		return nil, fmt.Errorf("missing Content-Length header")
	}
	contentLength, err := strconv.Atoi(contentLengthStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Content-Length: %w", err)
	}

	content := make([]byte, contentLength)
	if _, err := io.ReadFull(c.reader, content); err != nil {
		return nil, fmt.Errorf("failed to read message content: %w", err)
	}

	var message Message
	if err := json.Unmarshal(content, &message); err != nil {
		return nil, fmt.Errorf("failed to parse JSON message: %w", err)
	}
	return &message, nil
}

// WriteMessage writes one Content-Length framed LSP message
func (c *Connection) WriteMessage(message *Message) error {
	content, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	headers := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(content))
	if _, err := c.writer.Write([]byte(headers)); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	if _, err := c.writer.Write(content); err != nil {
		return fmt.Errorf("failed to write content: %w", err)
	}
	return nil
}
