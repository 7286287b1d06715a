// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package scanner

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tomtom215/scanserv/internal/config"
	"github.com/tomtom215/scanserv/internal/fileinfo"
)

// filenamePlaceholder in a command argument is replaced with the file's absolute path.
const filenamePlaceholder = "{filename}"

// Action runs against a finished scan.
type Action interface {
	Name() string
	Type() string
	Run(ctx context.Context, f *fileinfo.FileInfo) error
}

// newActions builds the configured actions. runner executes command actions.
func newActions(cfgs []config.ActionConfig, runner Runner) ([]Action, error) {
	actions := make([]Action, 0, len(cfgs))
	for _, c := range cfgs {
		switch c.Type {
		case config.ActionTypeCommand:
			actions = append(actions, &commandAction{cfg: c, runner: runner})
		case config.ActionTypeS3:
			actions = append(actions, &s3Action{cfg: c})
		default:
			return nil, fmt.Errorf("action %q: unknown type %q", c.Name, c.Type)
		}
	}
	return actions, nil
}

// commandAction runs a local program, e.g. lp or a mail script.
type commandAction struct {
	cfg    config.ActionConfig
	runner Runner
}

func (a *commandAction) Name() string { return a.cfg.Name }
func (a *commandAction) Type() string { return config.ActionTypeCommand }

func (a *commandAction) Run(ctx context.Context, f *fileinfo.FileInfo) error {
	args := make([]string, len(a.cfg.Args))
	for i, arg := range a.cfg.Args {
		args[i] = strings.ReplaceAll(arg, filenamePlaceholder, f.FullName())
	}
	if _, err := a.runner.Run(ctx, a.cfg.Command, args...); err != nil {
		return fmt.Errorf("action %s: %w", a.cfg.Name, err)
	}
	return nil
}

// s3Action uploads the file to an S3 compatible bucket.
type s3Action struct {
	cfg config.ActionConfig

	once   sync.Once
	client *minio.Client
	err    error
}

func (a *s3Action) Name() string { return a.cfg.Name }
func (a *s3Action) Type() string { return config.ActionTypeS3 }

func (a *s3Action) connect() (*minio.Client, error) {
	a.once.Do(func() {
		endpoint, secure, err := normaliseEndpoint(a.cfg.Endpoint, a.cfg.UseSSL)
		if err != nil {
			a.err = err
			return
		}
		a.client, a.err = minio.New(endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(a.cfg.AccessKey, a.cfg.SecretKey, ""),
			Secure: secure,
		})
	})
	return a.client, a.err
}

func (a *s3Action) Run(ctx context.Context, f *fileinfo.FileInfo) error {
	client, err := a.connect()
	if err != nil {
		return fmt.Errorf("action %s: connect: %w", a.cfg.Name, err)
	}

	exists, err := client.BucketExists(ctx, a.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("action %s: check bucket: %w", a.cfg.Name, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, a.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("action %s: create bucket %s: %w", a.cfg.Name, a.cfg.Bucket, err)
		}
	}

	contentType, err := f.ContentType()
	if err != nil {
		return fmt.Errorf("action %s: %w", a.cfg.Name, err)
	}

	key := path.Join(a.cfg.Prefix, f.Name())
	if _, err := client.FPutObject(ctx, a.cfg.Bucket, key, f.FullName(), minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return fmt.Errorf("action %s: upload %s: %w", a.cfg.Name, key, err)
	}
	return nil
}

// normaliseEndpoint accepts "minio:9000" or "http(s)://minio:9000". A scheme
// overrides useSSL.
func normaliseEndpoint(raw string, useSSL bool) (endpoint string, secure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, fmt.Errorf("empty endpoint")
	}
	if !strings.Contains(raw, "://") {
		return raw, useSSL, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false, err
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("invalid endpoint %q", raw)
	}
	if u.Path != "" && u.Path != "/" {
		return "", false, fmt.Errorf("endpoint must not contain a path")
	}
	return u.Host, u.Scheme == "https", nil
}
