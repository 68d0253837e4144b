package fetch

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/quantmind-br/jesse/internal/domain"
)

// DefaultFTPTimeout bounds the FTP control connection setup
const DefaultFTPTimeout = 30 * time.Second

// FTPConn is the subset of an FTP session used to retrieve one file
type FTPConn interface {
	Login(user, password string) error
	Retr(path string) (io.ReadCloser, error)
	Quit() error
}

// FTPDialer opens a session to addr (host:port), using implicit TLS when
// implicitTLS is set
type FTPDialer func(ctx context.Context, addr string, implicitTLS bool) (FTPConn, error)

// DialFTP is the FTPDialer backed by github.com/jlaffaye/ftp
func DialFTP(ctx context.Context, addr string, implicitTLS bool) (FTPConn, error) {
	opts := []ftp.DialOption{
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(DefaultFTPTimeout),
	}
	if implicitTLS {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ftp.DialWithTLS(&tls.Config{
			ServerName: host,
			MinVersion: tls.VersionTLS12,
		}))
	}

	conn, err := ftp.Dial(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &serverConn{conn: conn}, nil
}

type serverConn struct {
	conn *ftp.ServerConn
}

// Login authenticates and switches the session to binary transfers
func (c *serverConn) Login(user, password string) error {
	return c.conn.Login(user, password)
}

func (c *serverConn) Retr(path string) (io.ReadCloser, error) {
	resp, err := c.conn.Retr(path)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *serverConn) Quit() error {
	return c.conn.Quit()
}

// retrieveFTP downloads the descriptor path into w over a single session
func (r *Resolver) retrieveFTP(ctx context.Context, desc Descriptor, creds *Credentials, w io.Writer) error {
	scheme := desc.Scheme()
	target := desc.Redacted()

	port := desc.Port()
	if port == "" {
		port = scheme.DefaultPort()
	}
	addr := net.JoinHostPort(desc.Hostname(), port)

	conn, err := r.dialFTP(ctx, addr, scheme == SchemeFTPS)
	if err != nil {
		return domain.NewFetchError(scheme.String(), target, 0, err)
	}
	defer func() {
		if err := conn.Quit(); err != nil {
			r.logger.Debug().Err(err).Str("addr", addr).Msg("FTP quit failed")
		}
	}()

	user, password := anonymousLogin(creds)
	if err := conn.Login(user, password); err != nil {
		return domain.NewFetchError(scheme.String(), target, 0, err)
	}

	body, err := conn.Retr(desc.Path())
	if err != nil {
		return domain.NewFetchError(scheme.String(), target, 0, err)
	}
	defer body.Close()

	n, err := io.Copy(w, body)
	if err != nil {
		return domain.NewFetchError(scheme.String(), target, 0, err)
	}

	r.logger.Debug().Int64("bytes", n).Str("addr", addr).Msg("Retrieved FTP payload")
	return nil
}

// anonymousLogin maps missing credentials onto the conventional anonymous account
func anonymousLogin(creds *Credentials) (string, string) {
	user, password := creds.username(), creds.password()
	if user == "" {
		user = "anonymous"
	}
	if user == "anonymous" && (password == "" || password == "-") {
		password += "anonymous@"
	}
	return user, password
}
