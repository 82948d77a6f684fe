package naruapi

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// SearchBooks queries /srchBooks for a title, returning at most pageSize
// hits. If the literal title yields nothing it retries once with all
// whitespace stripped: the catalog indexes some titles unspaced. Transport
// and decode failures are logged and reported as no results.
func (c *Client) SearchBooks(ctx context.Context, title string, pageSize int) []BookDoc {
	for _, candidate := range searchCandidates(title) {
		params := url.Values{}
		params.Set("title", candidate)
		params.Set("pageSize", strconv.Itoa(pageSize))

		resp, err := c.get(ctx, "/srchBooks", params)
		if err != nil {
			c.log.Warn("book search failed", "title", candidate, "error", err)
			continue
		}
		if len(resp.Docs) == 0 {
			continue
		}

		docs := make([]BookDoc, 0, len(resp.Docs))
		for _, w := range resp.Docs {
			docs = append(docs, w.Doc)
		}
		// The API has been seen ignoring pageSize on some mirrors.
		if len(docs) > pageSize {
			docs = docs[:pageSize]
		}
		return docs
	}
	return nil
}

// FirstISBN resolves a title to the ISBN of its top search hit.
func (c *Client) FirstISBN(ctx context.Context, title string) (string, bool) {
	docs := c.SearchBooks(ctx, title, 1)
	if len(docs) == 0 || docs[0].ISBN13 == "" {
		return "", false
	}
	return docs[0].ISBN13, true
}

// searchCandidates lists the query strings to try, literal form first.
func searchCandidates(title string) []string {
	stripped := strings.Join(strings.Fields(title), "")
	if stripped == "" || stripped == title {
		return []string{title}
	}
	return []string{title, stripped}
}
