package training

import (
	"fmt"
	"net/url"

	"github.com/gorilla/schema"
)

var formEncoder = schema.NewEncoder()

func encodeForm(src any) (url.Values, error) {
	values := url.Values{}
	if err := formEncoder.Encode(src, values); err != nil {
		return nil, fmt.Errorf("training: encode form: %w", err)
	}
	return values, nil
}
