// File: pkg/common/provider.go
package common

type Provider string

const (
	S3    Provider = "S3"
	GCS   Provider = "GCS"
	MinIO Provider = "MinIO"
	Local Provider = "Local"
)
