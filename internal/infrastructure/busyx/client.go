package busyx

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/shopsync/backend/internal/domain/sync"
)

// maxResponseSize is the maximum allowed response size from the SOAP API (20MB)
const maxResponseSize = 20 * 1024 * 1024

// Adapter implements sync.ErpGateway against the Busyx SOAP API
type Adapter struct {
	config     *Config
	httpClient *http.Client

	maxRetries int
	retryPause time.Duration

	// sleep is swapped out in tests
	sleep func(ctx context.Context, d time.Duration) error
}

// NewAdapter creates an ERP adapter with the given configuration
func NewAdapter(config *Config) (*Adapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Adapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		maxRetries: 5,
		retryPause: 2 * time.Second,
		sleep:      sleepCtx,
	}, nil
}

// xmlEscape escapes a value for interpolation into a SOAP body
func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// envelope wraps an operation body with the SOAP envelope and credentials
func (a *Adapter) envelope(operation, inner string) string {
	var b strings.Builder
	b.WriteString(`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:bus="`)
	b.WriteString(a.config.URL)
	b.WriteString(`"><soapenv:Header/><soapenv:Body><bus:`)
	b.WriteString(operation)
	b.WriteString(`><api_log>`)
	b.WriteString(xmlEscape(a.config.APILog))
	b.WriteString(`</api_log><api_key>`)
	b.WriteString(xmlEscape(a.config.APIKey))
	b.WriteString(`</api_key>`)
	b.WriteString(inner)
	b.WriteString(`</bus:`)
	b.WriteString(operation)
	b.WriteString(`></soapenv:Body></soapenv:Envelope>`)
	return b.String()
}

// doCall posts one SOAP operation and returns the raw response bytes.
// Responses arrive as ISO-8859-1; the XML decoders honor the declared
// charset. Failed calls are retried against the same body with a fixed
// pause.
func (a *Adapter) doCall(ctx context.Context, operation, inner string) ([]byte, error) {
	body := a.envelope(operation, inner)

	var lastErr error
	for attempt := 1; attempt <= a.maxRetries; attempt++ {
		data, err := a.post(ctx, operation, body)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if attempt < a.maxRetries {
			if err := a.sleep(ctx, a.retryPause); err != nil {
				return nil, err
			}
		}
	}
	return nil, fmt.Errorf("%w: %s: %v", sync.ErrPlatformUnavailable, operation, lastErr)
}

func (a *Adapter) post(ctx context.Context, operation, body string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("busyx: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml")
	req.Header.Set("SOAPAction", a.config.URL+"#"+operation)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("busyx: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", sync.ErrPlatformRequestFailed, resp.StatusCode)
	}
	return raw, nil
}

// ---------------------------------------------------------------------------
// Response parsing
// ---------------------------------------------------------------------------

// charsetReader resolves the charset declared in the response prolog. The
// ERP declares ISO-8859-1 on every response.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "utf-8", "":
		return input, nil
	}
	return nil, fmt.Errorf("unsupported charset %q", label)
}

// newResponseDecoder builds an XML decoder that honors the declared charset
func newResponseDecoder(data []byte) *xml.Decoder {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charsetReader
	return decoder
}

// collectItems decodes every <item> element of a SOAP response, regardless
// of the namespaced wrappers around them
func collectItems[T any](data []byte) ([]T, error) {
	decoder := newResponseDecoder(data)
	var items []T
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return items, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", sync.ErrPlatformInvalidResponse, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "item" {
			continue
		}
		var item T
		if err := decoder.DecodeElement(&item, &start); err != nil {
			return nil, fmt.Errorf("%w: %v", sync.ErrPlatformInvalidResponse, err)
		}
		items = append(items, item)
	}
}

// returnElement finds the <return> element and yields its text content and
// attributes
func returnElement(data []byte) (string, []xml.Attr, error) {
	decoder := newResponseDecoder(data)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return "", nil, sync.ErrPlatformInvalidResponse
		}
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", sync.ErrPlatformInvalidResponse, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "return" {
			continue
		}

		attrs := start.Attr
		var text strings.Builder
		depth := 1
		for depth > 0 {
			inner, err := decoder.Token()
			if err != nil {
				return "", nil, fmt.Errorf("%w: %v", sync.ErrPlatformInvalidResponse, err)
			}
			switch t := inner.(type) {
			case xml.StartElement:
				depth++
			case xml.EndElement:
				depth--
			case xml.CharData:
				if depth == 1 {
					text.Write(t)
				}
			}
		}
		return strings.TrimSpace(text.String()), attrs, nil
	}
}

// sleepCtx pauses for d unless the context is cancelled first
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Ensure Adapter implements the ERP gateway interface
var _ sync.ErpGateway = (*Adapter)(nil)
