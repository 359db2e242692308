package main

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/weave/internal/config"
	"github.com/vango-dev/weave/internal/demo"
	"github.com/vango-dev/weave/internal/errors"
	"github.com/vango-dev/weave/pkg/frame"
	"github.com/vango-dev/weave/pkg/publish"
	"github.com/vango-dev/weave/pkg/render"
)

type renderOptions struct {
	configPath string
	out        string
	pretty     bool
	todos      []string

	publish bool
	bucket  string
	name    string
}

// newS3Client is replaced in tests.
var newS3Client = func(region string) (publish.PutObjectAPI, error) {
	client, err := publish.NewClientFromEnv(region)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func renderCmd(configPath *string) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an HTML snapshot of the document",
		Long: `Render runs one update pass over the demo document and writes the
resulting HTML page to stdout or --out.

With --publish the snapshot is also uploaded to the S3 bucket named by
--bucket or publish.bucket. Credentials are read from AWS_ACCESS_KEY_ID,
AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.

Examples:
  weave render
  weave render --out index.html --pretty
  weave render --todo milk --todo eggs --publish --bucket my-snapshots`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath = *configPath
			return runRender(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.out, "out", "o", "", "Write the snapshot to this file instead of stdout")
	f.BoolVar(&opts.pretty, "pretty", false, "Indent the HTML")
	f.StringArrayVar(&opts.todos, "todo", nil, "Todo to seed the document with (repeatable)")
	f.BoolVar(&opts.publish, "publish", false, "Upload the snapshot to S3")
	f.StringVar(&opts.bucket, "bucket", "", "S3 bucket (default from publish.bucket)")
	f.StringVar(&opts.name, "name", "index.html", "Object name under publish.prefix")
	return cmd
}

func runRender(cmd *cobra.Command, opts renderOptions) error {
	cfg, err := config.Resolve(opts.configPath)
	if err != nil {
		return err
	}
	if opts.bucket != "" {
		cfg.Publish.Bucket = opts.bucket
	}
	if opts.publish {
		if err := cfg.ValidatePublish(); err != nil {
			return err
		}
	}
	logger := newLogger(cfg)

	todos := opts.todos
	if len(todos) == 0 {
		todos = defaultTodos
	}
	d, err := newDocument(frame.NewManual(), logger, nil, "", todos)
	if err != nil {
		return errors.New("W401").Wrap(err)
	}

	var out io.Writer = cmd.OutOrStdout()
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return errors.New("W403").Wrap(err)
		}
		defer f.Close()
		out = f
	}

	var snapshot bytes.Buffer
	sr := render.NewStreamingRenderer(io.MultiWriter(out, &snapshot), render.RendererConfig{Pretty: opts.pretty})
	err = sr.RenderPage(render.PageData{
		Body:   d.app.Body,
		Title:  "weave todos",
		Styles: []string{demo.Stylesheet},
	})
	if err != nil {
		return errors.New("W401").Wrap(err)
	}
	if opts.out != "" {
		success(cmd, "wrote %s (%d bytes)", opts.out, snapshot.Len())
	}

	if !opts.publish {
		return nil
	}
	return publishSnapshot(cmd.Context(), cmd, cfg, opts.name, snapshot.Bytes())
}

func publishSnapshot(ctx context.Context, cmd *cobra.Command, cfg *config.Config, name string, html []byte) error {
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := newS3Client(cfg.Publish.Region)
	if err != nil {
		return errors.New("W402").Wrap(err)
	}
	p, err := publish.New(client, cfg.Publish.Bucket, cfg.Publish.Prefix, publish.WithLogger(newLogger(cfg)))
	if err != nil {
		return errors.New("W402").Wrap(err)
	}
	key, err := p.Publish(ctx, name, html)
	if err != nil {
		return errors.New("W402").Wrap(err)
	}
	success(cmd, "published s3://%s/%s", cfg.Publish.Bucket, key)
	return nil
}
