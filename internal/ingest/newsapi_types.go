package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

const StatusOK = "ok"

type APIResponse struct {
	Status       string       `json:"status"`
	TotalResults Count        `json:"totalResults"`
	Articles     []APIArticle `json:"articles"`

	// set by the API when status is "error"
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIArticle mirrors the API payload. Text fields are pointers because the
// API sends null for missing values.
type APIArticle struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Author      *string   `json:"author"`
	URL         *string   `json:"url"`
	URLToImage  *string   `json:"urlToImage"`
	PublishedAt *string   `json:"publishedAt"`
	Source      APISource `json:"source"`
}

type APISource struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

// Count is a non-negative integer that may arrive as a JSON number or a
// numeric string.
type Count int

func (c *Count) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}

	n, err := strconv.Atoi(string(b))
	if err != nil {
		f, ferr := strconv.ParseFloat(string(b), 64)
		if ferr != nil {
			return fmt.Errorf("totalResults %q is not an integer", b)
		}
		if math.IsNaN(f) || f < 0 || f >= math.MaxInt {
			return fmt.Errorf("totalResults %q is out of range", b)
		}
		n = int(f)
	}
	if n < 0 {
		return fmt.Errorf("totalResults %d is negative", n)
	}
	*c = Count(n)
	return nil
}
