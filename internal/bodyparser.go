package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/elnormous/contenttype"

	"github.com/dmitrymomot/plinth/pkg/upload"
)

// Multipart forms buffer up to this much in memory before spilling to
// temp files.
const defaultMaxMultipartMemory = 32 << 20 // 32MB

// parseBody populates the context's body map and uploaded files from
// the request, keyed off the declared content type. It runs once,
// before the handler, so every accessor sees an already-parsed body.
// Unknown content types leave the body empty; parse failures propagate
// to the app's error handler unmasked.
func (c *requestContext) parseBody() error {
	if !c.HasBody() {
		return nil
	}

	declared, err := contenttype.GetMediaType(c.request)
	if err != nil {
		// No or malformed Content-Type: nothing to parse.
		return nil
	}

	switch {
	case declared.Type == "application" && declared.Subtype == "json":
		return c.parseJSON()
	case declared.Type == "application" && declared.Subtype == "x-www-form-urlencoded":
		return c.parseForm()
	case declared.Type == "multipart" && declared.Subtype == "form-data":
		return c.parseMultipart()
	default:
		return nil
	}
}

func (c *requestContext) parseJSON() error {
	body := make(map[string]any)
	if err := json.NewDecoder(c.request.Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse json body: %w", err)
	}
	c.body = body
	return nil
}

func (c *requestContext) parseForm() error {
	if err := c.request.ParseForm(); err != nil {
		return fmt.Errorf("parse form body: %w", err)
	}
	c.body = valuesToMap(c.request.PostForm)
	return nil
}

func (c *requestContext) parseMultipart() error {
	if err := c.request.ParseMultipartForm(defaultMaxMultipartMemory); err != nil {
		return fmt.Errorf("parse multipart body: %w", err)
	}

	form := c.request.MultipartForm
	c.body = valuesToMap(url.Values(form.Value))

	if len(form.File) > 0 {
		c.files = make(map[string][]*upload.File, len(form.File))
		for field, headers := range form.File {
			wrapped := make([]*upload.File, len(headers))
			for i, fh := range headers {
				wrapped[i] = upload.New(fh)
			}
			c.files[field] = wrapped
		}
	}
	return nil
}

// valuesToMap flattens url.Values the same way the query map is built:
// single values become strings, repeated values ordered slices.
func valuesToMap(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for key, list := range values {
		if len(list) == 1 {
			out[key] = list[0]
			continue
		}
		anyList := make([]any, len(list))
		for i, v := range list {
			anyList[i] = v
		}
		out[key] = anyList
	}
	return out
}
