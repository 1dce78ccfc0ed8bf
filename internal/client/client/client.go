package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/factkeeper/internal/adminapi"
	"github.com/dmitrijs2005/factkeeper/internal/common"
	"github.com/dmitrijs2005/factkeeper/internal/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type Client struct {
	conn *grpc.ClientConn
	api  adminapi.AdminServiceClient

	mu          sync.Mutex
	password    string
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (c *Client) token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

func (c *Client) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if method == adminapi.FullMethod(adminapi.MethodLogin) || method == adminapi.FullMethod(adminapi.MethodPing) {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	err := invoker(withAccessToken(ctx, c.token()), method, req, reply, cc, opts...)
	if status.Code(err) != codes.Unauthenticated {
		return err
	}

	c.mu.Lock()
	password := c.password
	c.mu.Unlock()
	if password == "" {
		return err
	}

	// session expired, log in again and retry once
	if lerr := c.Login(ctx, password); lerr != nil {
		return err
	}
	return invoker(withAccessToken(ctx, c.token()), method, req, reply, cc, opts...)
}

// New connects to the admin endpoint. Extra dial options are appended, e.g.
// a bufconn dialer in tests.
func New(endpointURL string, opts ...grpc.DialOption) (*Client, error) {
	c := &Client{}
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.api = adminapi.NewAdminServiceClient(conn)
	return c, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Login exchanges the admin password for a session token and remembers the
// password for transparent re-login.
func (c *Client) Login(ctx context.Context, password string) error {
	resp, err := c.api.Login(ctx, &adminapi.LoginRequest{Password: password})
	if err != nil {
		return mapError(err)
	}

	c.mu.Lock()
	c.password = password
	c.accessToken = resp.AccessToken
	c.mu.Unlock()
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.api.Ping(ctx, &adminapi.Empty{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *Client) ChangePassword(ctx context.Context, newPassword, confirmation string) error {
	_, err := c.api.ChangePassword(ctx, &adminapi.ChangePasswordRequest{NewPassword: newPassword, Confirmation: confirmation})
	if err != nil {
		return mapError(err)
	}

	c.mu.Lock()
	c.password = newPassword
	c.mu.Unlock()
	return nil
}

func (c *Client) Pending(ctx context.Context) ([]models.SubmittedFact, error) {
	resp, err := c.api.ListPending(ctx, &adminapi.Empty{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Submissions, nil
}

func (c *Client) Approve(ctx context.Context, id string) (*models.Fact, error) {
	resp, err := c.api.Approve(ctx, &adminapi.IDRequest{ID: id})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Fact, nil
}

func (c *Client) Reject(ctx context.Context, id string) error {
	_, err := c.api.Reject(ctx, &adminapi.IDRequest{ID: id})
	return mapError(err)
}

func (c *Client) Facts(ctx context.Context, category, query string) ([]models.Fact, error) {
	resp, err := c.api.ListFacts(ctx, &adminapi.ListFactsRequest{Category: category, Query: query})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Facts, nil
}

func (c *Client) CreateFact(ctx context.Context, in models.FactInput) (*models.Fact, error) {
	resp, err := c.api.CreateFact(ctx, &adminapi.CreateFactRequest{Fact: in})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Fact, nil
}

func (c *Client) UpdateFact(ctx context.Context, id string, patch models.FactPatch) (*models.Fact, error) {
	resp, err := c.api.UpdateFact(ctx, &adminapi.UpdateFactRequest{ID: id, Patch: patch})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Fact, nil
}

func (c *Client) DeleteFact(ctx context.Context, id string) error {
	_, err := c.api.DeleteFact(ctx, &adminapi.IDRequest{ID: id})
	return mapError(err)
}

func (c *Client) ImportFacts(ctx context.Context, facts []models.Fact) (int, error) {
	resp, err := c.api.ImportFacts(ctx, &adminapi.ImportFactsRequest{Facts: facts})
	if err != nil {
		return 0, mapError(err)
	}
	return resp.Count, nil
}

// Backup asks the server for a snapshot and returns its key and download URL.
func (c *Client) Backup(ctx context.Context) (string, string, error) {
	resp, err := c.api.Backup(ctx, &adminapi.Empty{})
	if err != nil {
		return "", "", mapError(err)
	}
	return resp.Key, resp.URL, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return ErrNotFound
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	case codes.FailedPrecondition:
		return fmt.Errorf("rpc error: %s", st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
