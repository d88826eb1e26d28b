// Package bridge talks to the wallet bridge that owns the federation
// clients.
package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"decred.org/dcrwallet/v2/errors"
	"github.com/crypto-power/fediwallet/libwallet/txtypes"
	"github.com/crypto-power/fediwallet/libwallet/utils"
)

const (
	listTransactionsPath       = "listTransactions"
	updateTransactionNotesPath = "updateTransactionNotes"
)

type (
	// Client calls the bridge json endpoints.
	Client struct {
		baseURL string
		http    *utils.Client
	}

	listTransactionsRequest struct {
		FederationID string `json:"federationId"`
		StartTime    *int64 `json:"startTime,omitempty"`
		Limit        int    `json:"limit"`
	}

	updateTransactionNotesRequest struct {
		FederationID  string `json:"federationId"`
		TransactionID string `json:"transactionId"`
		Notes         string `json:"notes"`
	}
)

// NewClient returns a client of the bridge served at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    utils.NewClient(timeout),
	}
}

func (c *Client) post(ctx context.Context, path string, payload, response interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	reqConf := &utils.ReqConfig{
		Method:  http.MethodPost,
		HttpUrl: c.baseURL + "/" + path,
		Payload: body,
	}
	return c.http.Do(ctx, reqConf, response)
}

// ListTransactions returns up to limit records of the federation created
// before startTime, newest first.
func (c *Client) ListTransactions(ctx context.Context, federationID string, startTime *int64, limit int) ([]*txtypes.Transaction, error) {
	const op errors.Op = "bridge.ListTransactions"

	req := listTransactionsRequest{
		FederationID: federationID,
		StartTime:    startTime,
		Limit:        limit,
	}
	var txs []*txtypes.Transaction
	if err := c.post(ctx, listTransactionsPath, req, &txs); err != nil {
		return nil, errors.E(op, err)
	}
	log.Tracef("listTransactions %s: %d records", federationID, len(txs))
	return txs, nil
}

// UpdateTransactionNotes replaces the notes of a transaction.
func (c *Client) UpdateTransactionNotes(ctx context.Context, federationID, txID, notes string) error {
	const op errors.Op = "bridge.UpdateTransactionNotes"

	req := updateTransactionNotesRequest{
		FederationID:  federationID,
		TransactionID: txID,
		Notes:         notes,
	}
	if err := c.post(ctx, updateTransactionNotesPath, req, nil); err != nil {
		return errors.E(op, err)
	}
	return nil
}
