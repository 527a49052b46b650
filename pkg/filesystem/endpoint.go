package filesystem

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultSFTPPort is used when an sftp:// endpoint omits the port.
const DefaultSFTPPort = 22

// Endpoint is a parsed source or destination location: either a local
// directory path or an SFTP URL of the form sftp://user@host[:port]/path.
type Endpoint struct {
	IsRemote bool

	// Local endpoints
	LocalPath string

	// Remote endpoints
	Host string
	Port int
	User string
	Path string
}

// ParseEndpoint parses a path string, detecting whether it is a local
// path or an SFTP URL.
//
// SFTP path convention:
//   - sftp://user@host/path  → path relative to the user's home
//   - sftp://user@host//path → absolute path /path
//   - sftp://user@host       → the home directory itself
func ParseEndpoint(raw string) (*Endpoint, error) {
	if !strings.HasPrefix(raw, "sftp://") {
		return &Endpoint{IsRemote: false, LocalPath: raw}, nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid SFTP URL: %w", err)
	}

	if parsed.User == nil || parsed.User.Username() == "" {
		return nil, fmt.Errorf("SFTP URL must include a username (sftp://user@host/path)")
	}

	host := parsed.Hostname()
	if host == "" {
		return nil, fmt.Errorf("SFTP URL must include a host")
	}

	port := DefaultSFTPPort

	if portStr := parsed.Port(); portStr != "" {
		port, err = strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid port number: %w", err)
		}
	}

	remotePath := parsed.Path

	switch {
	case remotePath == "" || remotePath == "/":
		remotePath = "."
	case strings.HasPrefix(remotePath, "//"):
		remotePath = remotePath[1:]
	default:
		remotePath = strings.TrimPrefix(remotePath, "/")
	}

	return &Endpoint{
		IsRemote: true,
		Host:     host,
		Port:     port,
		User:     parsed.User.Username(),
		Path:     remotePath,
	}, nil
}

// CreateFileSystem creates a FileSystem for the given endpoint string.
// Returns the filesystem, the base path to use with it, and a closer
// (nil for local endpoints) to release any connection.
func CreateFileSystem(raw string) (FileSystem, string, func(), error) {
	endpoint, err := ParseEndpoint(raw)
	if err != nil {
		return nil, "", nil, err
	}

	if !endpoint.IsRemote {
		return NewLocalFileSystem(), endpoint.LocalPath, nil, nil
	}

	conn, err := Dial(endpoint.Host, endpoint.Port, endpoint.User)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to connect to %s@%s:%d: %w",
			endpoint.User, endpoint.Host, endpoint.Port, err)
	}

	closer := func() {
		_ = conn.Close()
	}

	return NewSFTPFileSystem(conn), endpoint.Path, closer, nil
}

// CreatePair creates filesystems for a source and destination endpoint.
// The returned closer releases both connections and is never nil.
func CreatePair(source, dest string) (
	srcFS FileSystem,
	dstFS FileSystem,
	srcPath string,
	dstPath string,
	closer func(),
	err error,
) {
	var srcCloser, dstCloser func()

	srcFS, srcPath, srcCloser, err = CreateFileSystem(source)
	if err != nil {
		return nil, nil, "", "", nil, fmt.Errorf("failed to create source filesystem: %w", err)
	}

	dstFS, dstPath, dstCloser, err = CreateFileSystem(dest)
	if err != nil {
		if srcCloser != nil {
			srcCloser()
		}

		return nil, nil, "", "", nil, fmt.Errorf("failed to create destination filesystem: %w", err)
	}

	closer = func() {
		if srcCloser != nil {
			srcCloser()
		}
		if dstCloser != nil {
			dstCloser()
		}
	}

	return srcFS, dstFS, srcPath, dstPath, closer, nil
}
