package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rajalakshmi-growphil/zoho-crm-integration/logger"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/repository"
	"github.com/sirupsen/logrus"
)

// CRM module API names served by this application.
const (
	ModuleCustomers = "Customers"
	ModuleOrders    = "Cart_Orders"
)

// listPageSize is the fixed page size for list operations.
const listPageSize = 10

// ErrAPIDomainMissing means the stored record has no api_domain, so no CRM
// endpoint can be derived. The user has to authenticate again.
var ErrAPIDomainMissing = errors.New("API domain missing, please authenticate again")

// ProviderError carries a non-2xx CRM response so handlers can pass the
// status code and body through to the caller unchanged.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider request failed with status %d", e.StatusCode)
}

// RecordService relays create and list operations to the CRM API. Every
// operation refreshes the access token first, then talks to the api_domain
// recorded in the token store.
type RecordService struct {
	auth   *AuthService
	schema *SchemaService
	store  repository.ITokenStore
	client *http.Client
}

func NewRecordService(auth *AuthService, schema *SchemaService, store repository.ITokenStore, client *http.Client) *RecordService {
	return &RecordService{
		auth:   auth,
		schema: schema,
		store:  store,
		client: client,
	}
}

// CreateRecord inserts a single record into the named module and returns the
// raw provider response.
func (s *RecordService) CreateRecord(ctx context.Context, module string, record interface{}) (json.RawMessage, error) {
	accessToken, apiDomain, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]interface{}{
		"data": []interface{}{record},
	})
	if err != nil {
		return nil, fmt.Errorf("could not encode record payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiDomain+"/crm/v3/"+module, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("could not build create request: %w", err)
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	body, status, err := s.do(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, &ProviderError{StatusCode: status, Body: string(body)}
	}

	logger.Log.WithField("module", module).Info("Record created successfully")
	return body, nil
}

// ListRecords fetches the first page of records from the named module. The
// field list is discovered fresh from the provider on every call and joined
// into the fields query parameter.
func (s *RecordService) ListRecords(ctx context.Context, module string) (json.RawMessage, error) {
	accessToken, apiDomain, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}

	fields, err := s.schema.ListFields(ctx, accessToken, apiDomain, module)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiDomain+"/crm/v3/"+module, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build list request: %w", err)
	}
	q := req.URL.Query()
	q.Set("fields", strings.Join(fields, ","))
	q.Set("per_page", strconv.Itoa(listPageSize))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Zoho-oauthtoken "+accessToken)

	body, status, err := s.do(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &ProviderError{StatusCode: status, Body: string(body)}
	}

	logger.Log.WithFields(logrus.Fields{
		"module": module,
		"fields": len(fields),
	}).Info("Records listed successfully")
	return body, nil
}

// authorize refreshes the access token and resolves the CRM base domain for
// the upcoming provider call.
func (s *RecordService) authorize(ctx context.Context) (string, string, error) {
	accessToken, err := s.auth.Refresh(ctx)
	if err != nil {
		return "", "", err
	}

	record, err := s.store.Load()
	if err != nil {
		return "", "", err
	}
	if record.APIDomain == "" {
		return "", "", ErrAPIDomainMissing
	}

	return accessToken, record.APIDomain, nil
}

func (s *RecordService) do(req *http.Request) ([]byte, int, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &TransportError{Err: err}
	}
	return body, resp.StatusCode, nil
}
