package utils

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectStore is the lazily built R2 binding. R2 speaks the S3 protocol, so
// the client is a plain S3 client pointed at the account endpoint.
type objectStore struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

var (
	storeOnce sync.Once
	store     *objectStore
	storeErr  error
)

// R2Configured reports whether the object-storage environment is set.
// Slips and captures are optional uploads; callers check this first and
// carry on locally when storage is absent.
func R2Configured() bool {
	return os.Getenv("R2_BUCKET") != "" &&
		os.Getenv("R2_ACCOUNT_ID") != "" &&
		os.Getenv("R2_PUBLIC_URL") != ""
}

func r2() (*objectStore, error) {
	storeOnce.Do(func() {
		bucket := os.Getenv("R2_BUCKET")
		accountID := os.Getenv("R2_ACCOUNT_ID")
		publicBase := os.Getenv("R2_PUBLIC_URL")
		if bucket == "" || accountID == "" || publicBase == "" {
			storeErr = fmt.Errorf("missing required R2 environment variables")
			return
		}

		cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion("auto"),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				os.Getenv("R2_ACCESS_KEY_ID"),
				os.Getenv("R2_SECRET_ACCESS_KEY"),
				"",
			)),
		)
		if err != nil {
			storeErr = fmt.Errorf("failed to load R2 config: %v", err)
			return
		}

		endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
		store = &objectStore{
			client: s3.NewFromConfig(cfg, func(o *s3.Options) {
				o.BaseEndpoint = aws.String(endpoint)
			}),
			bucket:     bucket,
			publicBase: strings.TrimRight(publicBase, "/"),
		}
	})
	return store, storeErr
}

// UploadToR2 stores an object and returns its public URL. key may carry a
// folder prefix (slips/..., captures/...); generated keys are URL-safe.
func UploadToR2(ctx context.Context, fileBytes []byte, key, contentType string) (string, error) {
	st, err := r2()
	if err != nil {
		return "", err
	}

	key = strings.TrimLeft(key, "/")
	_, err = st.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(st.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(fileBytes),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %v", err)
	}
	return st.publicBase + "/" + key, nil
}

// DeleteFromR2 deletes an object by its public URL.
func DeleteFromR2(ctx context.Context, fileURL string) error {
	st, err := r2()
	if err != nil {
		return err
	}

	u, err := url.Parse(fileURL)
	if err != nil {
		return fmt.Errorf("invalid file URL: %v", err)
	}
	key := strings.TrimLeft(u.Path, "/")

	if _, err := st.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(st.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete R2 object: %v", err)
	}
	return nil
}
