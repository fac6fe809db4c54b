package oracle

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"

	"github.com/cosmos/cosmos-sdk/client/grpc/tmservice"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

// NewGrpcConnection parses a GRPC endpoint and creates a connection to it.
// The connection is established lazily.
func NewGrpcConnection(endpoint string) (*grpc.ClientConn, error) {
	grpcURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse grpc url: %w", err)
	}

	var secureOpt grpc.DialOption
	switch grpcURL.Scheme {
	case "http":
		secureOpt = grpc.WithInsecure()
	case "https":
		creds := credentials.NewTLS(&tls.Config{
			MinVersion: tls.VersionTLS12,
		})
		secureOpt = grpc.WithTransportCredentials(creds)
	default:
		return nil, fmt.Errorf("unknown grpc url scheme: %s", grpcURL.Scheme)
	}

	grpcConn, err := grpc.Dial(grpcURL.Host, secureOpt)
	if err != nil {
		return nil, fmt.Errorf("failed to dial grpc: %w", err)
	}

	return grpcConn, nil
}

// SyncChecker reports whether the oracle node has caught up with the chain.
// Tax rates served by a syncing node may be stale.
type SyncChecker struct {
	client tmservice.ServiceClient
}

func NewSyncChecker(client tmservice.ServiceClient) SyncChecker {
	return SyncChecker{client: client}
}

// Check fails when the node cannot be reached or is still syncing
func (c SyncChecker) Check(ctx context.Context) error {
	res, err := c.client.GetSyncing(ctx, &tmservice.GetSyncingRequest{})
	if err != nil {
		return fmt.Errorf("failed to query sync status: %w", err)
	}
	if res.Syncing {
		return errors.New("oracle node is syncing")
	}
	return nil
}
