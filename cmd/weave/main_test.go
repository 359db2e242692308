package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	werrors "github.com/vango-dev/weave/internal/errors"
	"github.com/vango-dev/weave/pkg/publish"
)

const testConfig = `server:
  host: localhost
  port: 8080
log:
  level: error
  format: text
publish:
  prefix: snapshots
`

type fakeS3 struct {
	keys   []string
	bucket string
	body   string
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.keys = append(f.keys, aws.ToString(in.Key))
	f.bucket = aws.ToString(in.Bucket)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weave.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func useFakeS3(t *testing.T, fake *fakeS3) {
	t.Helper()
	prev := newS3Client
	newS3Client = func(string) (publish.PutObjectAPI, error) { return fake, nil }
	t.Cleanup(func() { newS3Client = prev })
}

func TestRenderStdout(t *testing.T) {
	out, _, err := execute(t, "render", "-c", writeConfig(t), "--todo", "buy milk", "--todo", "walk dog")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "<title>weave todos</title>", "buy milk", "walk dog", `data-left="2"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "Read the docs") {
		t.Error("default todos rendered although --todo was given")
	}
	if strings.Contains(out, "<script") {
		t.Error("snapshot should not load the client script")
	}
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	out, errOut, err := execute(t, "render", "-c", writeConfig(t), "--out", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
	if !strings.Contains(errOut, "wrote "+path) {
		t.Errorf("stderr = %q", errOut)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Read the docs") {
		t.Error("file missing default todos")
	}
}

func TestRenderBadOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "index.html")
	_, _, err := execute(t, "render", "-c", writeConfig(t), "--out", path)
	if got := werrors.Code(err); got != "W403" {
		t.Errorf("code = %q, want W403 (err %v)", got, err)
	}
}

func TestRenderPublish(t *testing.T) {
	fake := &fakeS3{}
	useFakeS3(t, fake)

	out, errOut, err := execute(t, "render", "-c", writeConfig(t), "--publish", "--bucket", "site", "--name", "home.html")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if fake.bucket != "site" {
		t.Errorf("bucket = %q, want site", fake.bucket)
	}
	if len(fake.keys) != 1 || fake.keys[0] != "snapshots/home.html" {
		t.Errorf("keys = %v", fake.keys)
	}
	if fake.body != out {
		t.Error("published body differs from the rendered output")
	}
	if !strings.Contains(errOut, "published s3://site/snapshots/home.html") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRenderPublishNoBucket(t *testing.T) {
	fake := &fakeS3{}
	useFakeS3(t, fake)

	_, _, err := execute(t, "render", "-c", writeConfig(t), "--publish")
	if got := werrors.Code(err); got != "W207" {
		t.Errorf("code = %q, want W207 (err %v)", got, err)
	}
	if len(fake.keys) != 0 {
		t.Error("nothing should be published")
	}
}

func TestRenderPublishFails(t *testing.T) {
	boom := errors.New("access denied")
	useFakeS3(t, &fakeS3{err: boom})

	_, _, err := execute(t, "render", "-c", writeConfig(t), "--publish", "--bucket", "site")
	if got := werrors.Code(err); got != "W402" {
		t.Errorf("code = %q, want W402", got)
	}
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want it to wrap %v", err, boom)
	}
}

func TestServeInvalidPort(t *testing.T) {
	_, _, err := execute(t, "serve", "-c", writeConfig(t), "--port", "70000")
	if got := werrors.Code(err); got != "W203" {
		t.Errorf("code = %q, want W203 (err %v)", got, err)
	}
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := execute(t, "render", "-c", filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if out != version+"\n" {
		t.Errorf("version --short = %q", out)
	}

	out, _, err = execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "weave "+version) || !strings.Contains(out, "Go version:") {
		t.Errorf("version = %q", out)
	}
}
