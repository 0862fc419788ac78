package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-chama-sync/internal/config"
	"github.com/MKhiriev/go-chama-sync/internal/logger"
	"github.com/MKhiriev/go-chama-sync/internal/utils"
	"github.com/MKhiriev/go-chama-sync/models"
	"github.com/go-resty/resty/v2"
)

// HashHeader carries the hex HMAC-SHA256 of the request body.
const HashHeader = "HashSHA256"

const (
	documentsPath = "/api/collections/{collection}/documents"
	documentPath  = "/api/collections/{collection}/documents/{id}"
)

type httpDocumentStore struct {
	client *utils.HTTPClient
	hasher *utils.Hasher

	signKey       string
	issuer        string
	deviceID      string
	tokenDuration time.Duration

	mu    sync.Mutex
	token models.Token

	logger *logger.Logger
}

// NewHTTPDocumentStore constructs the REST implementation of [DocumentStore]
// talking to the bundled document server.
//
// The base URL from adapterCfg.HTTPAddress is normalised (a missing scheme
// defaults to http). Bearer tokens are minted locally from appCfg.TokenSignKey
// for appCfg.DeviceID and renewed shortly before they expire.
func NewHTTPDocumentStore(adapterCfg config.Adapter, appCfg config.ClientApp, log *logger.Logger) (DocumentStore, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpDocumentStore{
		client:        utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		hasher:        utils.NewHasher(appCfg.HashKey),
		signKey:       appCfg.TokenSignKey,
		issuer:        appCfg.TokenIssuer,
		deviceID:      appCfg.DeviceID,
		tokenDuration: appCfg.TokenDuration,
		logger:        log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Set implements [DocumentStore] with
// PUT /api/collections/{collection}/documents/{id}.
func (h *httpDocumentStore) Set(ctx context.Context, collection string, doc models.Document) error {
	if err := validateDocument(collection, doc); err != nil {
		return err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetHeader(HashHeader, h.hasher.Hex(body)).
		SetPathParams(map[string]string{"collection": collection, "id": doc.ID}).
		SetBody(body).
		Put(documentPath)
	if err != nil {
		return fmt.Errorf("%w: set request: %w", ErrUnavailable, err)
	}

	return h.checkResponse(resp)
}

// Query implements [DocumentStore] with
// GET /api/collections/{collection}/documents?updated_after=&group_id=.
func (h *httpDocumentStore) Query(ctx context.Context, collection string, q models.DocumentQuery) ([]models.Document, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	params := map[string]string{"updated_after": strconv.FormatInt(q.UpdatedAfter, 10)}
	if q.GroupID != "" {
		params["group_id"] = q.GroupID
	}

	var list models.DocumentList
	resp, err := req.
		SetPathParam("collection", collection).
		SetQueryParams(params).
		SetResult(&list).
		Get(documentsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: query request: %w", ErrUnavailable, err)
	}
	if err = h.checkResponse(resp); err != nil {
		return nil, err
	}

	sortDocuments(list.Documents)
	return list.Documents, nil
}

// Close implements [DocumentStore].
func (h *httpDocumentStore) Close() error {
	h.client.GetClient().CloseIdleConnections()
	return nil
}

// checkResponse maps resp onto an adapter error. A rejected token is dropped
// so the next request mints a fresh one.
func (h *httpDocumentStore) checkResponse(resp *resty.Response) error {
	err := mapHTTPError(resp)
	if errors.Is(err, ErrUnauthorized) {
		h.mu.Lock()
		h.token = models.Token{}
		h.mu.Unlock()
	}
	return err
}

func (h *httpDocumentStore) authedRequest(ctx context.Context) (*resty.Request, error) {
	token, err := h.bearer()
	if err != nil {
		return nil, err
	}

	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}

// bearer returns a valid signed device token, minting a new one when the
// cached token has less than a tenth of its lifetime left.
func (h *httpDocumentStore) bearer() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.token.SignedString != "" && h.token.ExpiresAt != nil &&
		time.Until(h.token.ExpiresAt.Time) > h.tokenDuration/10 {
		return h.token.SignedString, nil
	}

	token, err := utils.GenerateJWTToken(h.issuer, h.deviceID, h.tokenDuration, h.signKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	h.logger.Debug().
		Str("func", "httpDocumentStore.bearer").
		Str("device_id", h.deviceID).
		Time("expires_at", token.ExpiresAt.Time).
		Msg("minted device token")

	h.token = token
	return token.SignedString, nil
}
