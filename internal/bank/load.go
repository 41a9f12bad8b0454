package bank

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/persona-tui/persona/internal/model"
)

const fetchTimeout = 15 * time.Second

// maxBankBytes bounds how much of a remote bank is read.
const maxBankBytes = 8 << 20

// Load reads and validates a question bank from a local path or an
// http(s) URL.
func Load(ctx context.Context, source string) (*model.QuestionBank, error) {
	if IsURL(source) {
		return Fetch(ctx, source)
	}
	return LoadFile(source)
}

// IsURL reports whether the source names a remote bank.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// LoadFile reads and validates a question bank file.
func LoadFile(path string) (*model.QuestionBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bank file: %w", err)
	}
	return Parse(data)
}

// Fetch downloads and validates a question bank from a URL.
func Fetch(ctx context.Context, url string) (*model.QuestionBank, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build bank request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bank: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort close of the response body.
			_ = cerr
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch bank: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBankBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read bank response: %w", err)
	}
	return Parse(data)
}
