package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Set asks the daemon to apply a wallpaper.
func (c *Client) Set(req SetRequest) (*SetResponse, error) {
	var resp SetResponse
	if err := c.client.Call(ServiceName+".Set", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon snapshot.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call(ServiceName+".Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ReloadConfig asks the daemon to re-read its config file.
func (c *Client) ReloadConfig() (*ReloadConfigResponse, error) {
	var resp ReloadConfigResponse
	if err := c.client.Call(ServiceName+".ReloadConfig", ReloadConfigRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
