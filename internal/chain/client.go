package chain

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/mr-tron/base58"

	"perpscope/internal/model"
)

// Client wraps a JSON-RPC connection to a Solana node and provides the two
// account-read calls the scanner needs.
type Client struct {
	rpcClient *rpc.Client
}

// KeyedAccount pairs an account address with its raw data.
type KeyedAccount struct {
	Address model.Address
	Data    []byte
}

type accountData struct {
	// Data is [content, encoding]; content is base64 when requested so.
	Data []string `json:"data"`
}

type programAccount struct {
	Pubkey  string      `json:"pubkey"`
	Account accountData `json:"account"`
}

type accountInfoResult struct {
	Value *accountData `json:"value"`
}

// NewClient dials the RPC endpoint.
func NewClient(ctx context.Context, rpcURL string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return &Client{rpcClient: rpcClient}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// ProgramAccounts returns all accounts owned by the program whose data
// begins with the given discriminator tag.
func (c *Client) ProgramAccounts(ctx context.Context, program model.Address, discriminator []byte) ([]KeyedAccount, error) {
	opts := map[string]interface{}{
		"encoding": "base64",
		"filters": []interface{}{
			map[string]interface{}{
				"memcmp": map[string]interface{}{
					"offset": 0,
					"bytes":  base58.Encode(discriminator),
				},
			},
		},
	}

	var result []programAccount
	if err := c.rpcClient.CallContext(ctx, &result, "getProgramAccounts", program.String(), opts); err != nil {
		return nil, fmt.Errorf("getProgramAccounts: %w", err)
	}

	accounts := make([]KeyedAccount, 0, len(result))
	for _, entry := range result {
		address, err := model.ParseAddress(entry.Pubkey)
		if err != nil {
			return nil, fmt.Errorf("program account pubkey: %w", err)
		}
		data, err := decodeAccountData(entry.Account)
		if err != nil {
			return nil, fmt.Errorf("program account %s: %w", entry.Pubkey, err)
		}
		accounts = append(accounts, KeyedAccount{Address: address, Data: data})
	}
	return accounts, nil
}

// AccountData returns the raw data of a single account.
func (c *Client) AccountData(ctx context.Context, address model.Address) ([]byte, error) {
	opts := map[string]interface{}{"encoding": "base64"}

	var result accountInfoResult
	if err := c.rpcClient.CallContext(ctx, &result, "getAccountInfo", address.String(), opts); err != nil {
		return nil, fmt.Errorf("getAccountInfo %s: %w", address, err)
	}
	if result.Value == nil {
		return nil, fmt.Errorf("account %s not found", address)
	}
	return decodeAccountData(*result.Value)
}

func decodeAccountData(account accountData) ([]byte, error) {
	if len(account.Data) == 0 {
		return nil, fmt.Errorf("missing account data")
	}
	data, err := base64.StdEncoding.DecodeString(account.Data[0])
	if err != nil {
		return nil, fmt.Errorf("decode account data: %w", err)
	}
	return data, nil
}
