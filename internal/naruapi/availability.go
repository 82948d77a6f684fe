package naruapi

import (
	"context"
	"net/url"
)

// CheckAvailability asks /bookExist whether the branch holds the ISBN and
// whether a copy is currently loanable. Any failure, including a response
// without the expected result shape, is "unknown" and returns nil; callers
// skip the pair rather than guessing.
func (c *Client) CheckAvailability(ctx context.Context, libCode, isbn13 string) *Availability {
	params := url.Values{}
	params.Set("libCode", libCode)
	params.Set("isbn13", isbn13)

	resp, err := c.get(ctx, "/bookExist", params)
	if err != nil {
		c.log.Warn("availability check failed", "libCode", libCode, "isbn13", isbn13, "error", err)
		return nil
	}
	if resp.Result == nil {
		return nil
	}
	return &Availability{
		HasBook:       resp.Result.HasBook == "Y",
		LoanAvailable: resp.Result.LoanAvailable == "Y",
	}
}
