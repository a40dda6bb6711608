// file: service/schema_service.go

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rajalakshmi-growphil/zoho-crm-integration/model"
)

// ErrNoFieldsFound is returned when the field-metadata response carries no
// "fields" collection at all.
var ErrNoFieldsFound = errors.New("no fields info found")

// SchemaFetchError means the field-metadata endpoint answered with a
// non-200 status. Body holds the provider response verbatim.
type SchemaFetchError struct {
	StatusCode int
	Body       string
}

func (e *SchemaFetchError) Error() string {
	return fmt.Sprintf("field metadata request failed with status %d", e.StatusCode)
}

// SchemaService fetches the field layout of a CRM module. The field list is
// never cached; every call goes to the provider.
type SchemaService struct {
	client *http.Client
}

func NewSchemaService(client *http.Client) *SchemaService {
	return &SchemaService{client: client}
}

// ListFields returns the api_name of every field in the named module, in the
// order the provider reports them.
func (s *SchemaService) ListFields(ctx context.Context, accessToken, apiDomain, module string) ([]string, error) {
	endpoint := apiDomain + "/crm/v3/settings/fields"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build field metadata request: %w", err)
	}
	q := req.URL.Query()
	q.Set("module", module)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Zoho-oauthtoken "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &SchemaFetchError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var payload struct {
		Fields []model.Field `json:"fields"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("could not decode field metadata: %w", err)
	}
	// A present-but-empty list decodes to a non-nil slice, so nil means the
	// key was absent entirely.
	if payload.Fields == nil {
		return nil, ErrNoFieldsFound
	}

	names := make([]string, 0, len(payload.Fields))
	for _, field := range payload.Fields {
		names = append(names, field.APIName)
	}
	return names, nil
}
