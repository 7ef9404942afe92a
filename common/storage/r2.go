package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	commonConfig "github.com/elhaiti30/short-form-video-blitz-sub000/common/config"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/logger"
)

func Enabled() bool {
	return commonConfig.R2AccessKey != "" && commonConfig.R2SecretKey != "" &&
		commonConfig.R2BucketName != "" && commonConfig.R2Endpoint != ""
}

func extensionFromContentType(contentType string) string {
	contentType = strings.ToLower(contentType)
	switch {
	case strings.Contains(contentType, "mp4"):
		return ".mp4"
	case strings.Contains(contentType, "webm"):
		return ".webm"
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return ".jpg"
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "webp"):
		return ".webp"
	default:
		return ".mp4"
	}
}

func newClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			commonConfig.R2AccessKey, commonConfig.R2SecretKey, "")),
		awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: commonConfig.R2Endpoint}, nil
			}),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %v", err)
	}
	// Path-style avoids virtual-host subdomain TLS issues on R2.
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	}), nil
}

// MirrorAsset downloads a provider-hosted asset and re-uploads it to the
// configured bucket so the dashboard keeps a stable URL after the provider
// link expires. Returns the public URL of the mirrored object.
func MirrorAsset(ctx context.Context, sourceURL string, taskId string) (string, error) {
	if !Enabled() {
		return "", fmt.Errorf("R2 configuration is incomplete")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build download request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download asset: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download asset: status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	filename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102-150405"), taskId, extensionFromContentType(contentType))
	objectKey := path.Join("generated", filename)

	s3Client, err := newClient(ctx)
	if err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read asset body: %v", err)
	}

	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(commonConfig.R2BucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %v", err)
	}

	var resultUrl string
	if commonConfig.R2PublicUrl != "" {
		resultUrl = fmt.Sprintf("%s/%s", commonConfig.R2PublicUrl, objectKey)
	} else {
		resultUrl = fmt.Sprintf("%s/%s/%s", commonConfig.R2Endpoint, commonConfig.R2BucketName, objectKey)
	}
	logger.SysLog(fmt.Sprintf("asset mirrored to R2: %s (size: %d bytes)", resultUrl, len(body)))

	return resultUrl, nil
}
