// File: internal/provider/providers.go
package provider

// This file explicitly imports all provider implementation packages.
// The blank identifier (_) ensures that the init() function of each package runs,
// allowing them to register themselves with the central provider registry.
//
// To add a new provider, implement storage.Bucket in pkg/storage/<name>,
// register it from that package's init() function, and add the import here.

import (
	_ "pixdrop/pkg/storage/aws"
	_ "pixdrop/pkg/storage/gcp"
	_ "pixdrop/pkg/storage/local"
	_ "pixdrop/pkg/storage/minio"
)
