package repository

import "context"

// StorageRepository moves files between the local disk and object storage.
type StorageRepository interface {
	// Download fetches uri into destDir and returns the local path.
	Download(ctx context.Context, uri, destDir string) (string, error)
	// Upload copies localPath under the uri prefix and returns the object URI.
	Upload(ctx context.Context, localPath, uriPrefix string) (string, error)
	// CallerAccount returns the account id of the active credentials.
	CallerAccount(ctx context.Context) (string, error)
}
