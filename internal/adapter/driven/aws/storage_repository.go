package aws

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/diillson/covid-stats-dashboard-go/internal/domain/repository"
	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

// StorageRepositoryImpl implementa o StorageRepository sobre S3, com cache de clientes.
type StorageRepositoryImpl struct {
	profile string
	region  string

	cfg       *aws.Config
	s3Client  *s3.Client
	stsClient *sts.Client
	mu        sync.Mutex
}

// NewStorageRepository cria uma nova implementação do StorageRepository.
// Credentials are resolved lazily, on the first call that needs them.
func NewStorageRepository(profile, region string) repository.StorageRepository {
	return &StorageRepositoryImpl{profile: profile, region: region}
}

func (r *StorageRepositoryImpl) getAWSConfig(ctx context.Context) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cfg != nil {
		return *r.cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.profile))
	}
	if r.region != "" {
		opts = append(opts, config.WithRegion(r.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", r.profile, err)
	}

	r.cfg = &cfg
	return cfg, nil
}

func (r *StorageRepositoryImpl) getS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := r.getAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.s3Client == nil {
		r.s3Client = s3.NewFromConfig(cfg)
	}
	return r.s3Client, nil
}

func (r *StorageRepositoryImpl) getSTSClient(ctx context.Context) (*sts.Client, error) {
	cfg, err := r.getAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stsClient == nil {
		r.stsClient = sts.NewFromConfig(cfg)
	}
	return r.stsClient, nil
}

// Download baixa o objeto para destDir e retorna o caminho local.
func (r *StorageRepositoryImpl) Download(ctx context.Context, uri, destDir string) (string, error) {
	bucket, key, err := parseS3URI(uri)
	if err != nil {
		return "", err
	}
	if key == "" || strings.HasSuffix(key, "/") {
		return "", fmt.Errorf("%w: %q has no object key", types.ErrInvalidS3URI, uri)
	}

	client, err := r.getS3Client(ctx)
	if err != nil {
		return "", err
	}

	localPath := filepath.Join(destDir, path.Base(key))
	file, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("error creating %s: %w", localPath, err)
	}
	defer file.Close()

	downloader := manager.NewDownloader(client)
	if _, err := downloader.Download(ctx, file, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return "", fmt.Errorf("error downloading s3://%s/%s: %w", bucket, key, err)
	}

	return localPath, nil
}

// Upload envia localPath para o prefixo informado e retorna a URI do objeto.
func (r *StorageRepositoryImpl) Upload(ctx context.Context, localPath, uriPrefix string) (string, error) {
	bucket, prefix, err := parseS3URI(uriPrefix)
	if err != nil {
		return "", err
	}
	key := objectKey(prefix, filepath.Base(localPath))

	client, err := r.getS3Client(ctx)
	if err != nil {
		return "", err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("error opening %s: %w", localPath, err)
	}
	defer file.Close()

	uploader := manager.NewUploader(client)
	if _, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType(localPath)),
	}); err != nil {
		return "", fmt.Errorf("error uploading %s: %w", localPath, err)
	}

	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}

// CallerAccount retorna o ID da conta das credenciais ativas.
func (r *StorageRepositoryImpl) CallerAccount(ctx context.Context) (string, error) {
	client, err := r.getSTSClient(ctx)
	if err != nil {
		return "", err
	}

	result, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to get caller identity: %w", err)
	}
	return aws.ToString(result.Account), nil
}

// parseS3URI splits s3://bucket/key. The key may be empty.
func parseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", types.ErrInvalidS3URI, uri)
	}

	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%w: %q", types.ErrInvalidS3URI, uri)
	}
	return bucket, key, nil
}

func objectKey(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func contentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	case ".pdf":
		return "application/pdf"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
