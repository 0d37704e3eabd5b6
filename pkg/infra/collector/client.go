package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/relware/mapship/pkg/domain/interfaces"
	"github.com/relware/mapship/pkg/domain/model"
	"github.com/relware/mapship/pkg/domain/types"
)

type client struct {
	endpoint   string
	token      types.Secret
	httpClient *http.Client
}

// NewClient creates a collector client for the given upload endpoint. The
// endpoint scheme decides the transport (http or https); every request
// carries the integration token as a bearer credential and is bounded by
// timeout.
func NewClient(endpoint string, token types.Secret, timeout time.Duration) (interfaces.CollectorClient, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse collector endpoint", goerr.V("endpoint", endpoint))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("unsupported collector endpoint scheme", goerr.V("endpoint", endpoint), goerr.V("scheme", u.Scheme))
	}

	if timeout <= 0 {
		timeout = model.DefaultTimeout
	}

	return &client{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// UploadSourceMap sends one source map as a multipart form: the file content
// under its logical asset name plus the release id.
func (c *client) UploadSourceMap(ctx context.Context, release string, rec model.SourceMapRecord, content []byte) (*model.CollectorResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", rec.Name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create multipart file part", goerr.V("name", rec.Name))
	}
	if _, err := fw.Write(content); err != nil {
		return nil, goerr.Wrap(err, "failed to write source map content", goerr.V("name", rec.Name))
	}
	if err := mw.WriteField("release", release); err != nil {
		return nil, goerr.Wrap(err, "failed to write release field")
	}
	if err := mw.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to finalize multipart body")
	}

	return c.post(ctx, &body, mw.FormDataContentType())
}

// UploadCommits sends the recent-commit list as a multipart form: the
// release id plus the JSON-serialized commit array.
func (c *client) UploadCommits(ctx context.Context, release string, commits []model.CommitRecord) (*model.CollectorResponse, error) {
	encoded, err := json.Marshal(commits)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to serialize commits")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("release", release); err != nil {
		return nil, goerr.Wrap(err, "failed to write release field")
	}
	if err := mw.WriteField("commits", string(encoded)); err != nil {
		return nil, goerr.Wrap(err, "failed to write commits field")
	}
	if err := mw.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to finalize multipart body")
	}

	return c.post(ctx, &body, mw.FormDataContentType())
}

// post sends the multipart body and decodes the collector's reply. A body
// that is not the expected JSON shape is returned raw with Parsed=false
// rather than treated as an error.
func (c *client) post(ctx context.Context, body io.Reader, contentType string) (*model.CollectorResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create upload request", goerr.V("endpoint", c.endpoint))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.token.Unveil())

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send upload request", goerr.V("endpoint", c.endpoint))
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read collector response")
	}

	resp := &model.CollectorResponse{Raw: raw}
	if err := json.Unmarshal(raw, resp); err != nil {
		resp.Parsed = false
		return resp, nil
	}
	resp.Parsed = true

	return resp, nil
}
