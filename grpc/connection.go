package grpc

import (
	"crypto/tls"
	"fmt"
	"net/url"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

// URI schemes that select a TLS transport.
var secureSchemes = []string{"https", "grpcs", "tcp+tls"}

// Options configures a gRPC channel to a node.
type Options struct {
	// Maximum size of a single inbound message.
	InboundMessageSize int

	// Idle channels are torn down after this long and lazily reconnected.
	IdleTimeout time.Duration

	// Keep-alive ping interval and the time to wait for the ack.
	KeepAliveTime    time.Duration
	KeepAliveTimeout time.Duration

	// Additional dial options, appended after the defaults.
	DialOptions []grpc.DialOption
}

// DefaultOptions returns the options used when none are supplied.
func DefaultOptions() Options {
	return Options{
		InboundMessageSize: 40 * 1024 * 1024,
		IdleTimeout:        5 * time.Minute,
		KeepAliveTime:      60 * time.Second,
		KeepAliveTimeout:   20 * time.Second,
	}
}

// Target is a parsed node address.
type Target struct {
	// host:port handed to the dialer
	Address string
	Secure  bool
}

// ParseTarget interprets a node URI. With a scheme, TLS is used for https, grpcs and tcp+tls. Without one
// (a bare host:port), TLS is used when the port is 443.
func ParseTarget(grpcUri string) (*Target, error) {
	if !strings.Contains(grpcUri, "://") {
		if grpcUri == "" {
			return nil, fmt.Errorf("empty grpc uri")
		}
		return &Target{
			Address: grpcUri,
			Secure:  strings.HasSuffix(grpcUri, ":443"),
		}, nil
	}

	parsed, err := url.Parse(grpcUri)
	if err != nil {
		return nil, fmt.Errorf("invalid grpc uri %q: %w", grpcUri, err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("grpc uri %q has no host", grpcUri)
	}

	secure := false
	for _, scheme := range secureSchemes {
		if strings.EqualFold(parsed.Scheme, scheme) {
			secure = true
		}
	}

	address := parsed.Host
	if parsed.Port() == "" {
		if secure {
			address = parsed.Host + ":443"
		} else {
			address = parsed.Host + ":9090"
		}
	}

	return &Target{
		Address: address,
		Secure:  secure,
	}, nil
}

// GetGrpcConnection opens a channel to the node at grpcUri. The caller owns the returned connection.
func GetGrpcConnection(grpcUri string, options Options) (*grpc.ClientConn, error) {
	target, err := ParseTarget(grpcUri)
	if err != nil {
		return nil, err
	}

	transportCredentials := grpc.WithTransportCredentials(insecure.NewCredentials())
	if target.Secure {
		creds := credentials.NewTLS(&tls.Config{
			MinVersion: tls.VersionTLS12,
		})
		transportCredentials = grpc.WithTransportCredentials(creds)
	}

	opts := []grpc.DialOption{
		transportCredentials,
	}
	if options.InboundMessageSize > 0 {
		opts = append(opts, grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(options.InboundMessageSize)))
	}
	if options.IdleTimeout > 0 {
		opts = append(opts, grpc.WithIdleTimeout(options.IdleTimeout))
	}
	if options.KeepAliveTime > 0 {
		opts = append(opts, grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:    options.KeepAliveTime,
			Timeout: options.KeepAliveTimeout,
		}))
	}
	opts = append(opts, options.DialOptions...)

	return grpc.NewClient(target.Address, opts...)
}
