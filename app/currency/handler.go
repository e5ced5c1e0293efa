package currency

import (
	"net/http"

	"github.com/lankamart/storefront/app/response"
	"github.com/lankamart/storefront/currency"
)

// ConvertResponse mirrors the two-field converter: From is the raw input,
// Result is the converted text, empty when the input has no number.
type ConvertResponse struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Input  string `json:"input"`
	Result string `json:"result"`
	Rate   string `json:"rate"`
}

type ConverterHandler struct {
	conv *currency.Converter
}

func NewConverterHandler(conv *currency.Converter) *ConverterHandler {
	return &ConverterHandler{conv: conv}
}

// HandleConvert converts ?lkr= forward or ?vnd= backward.
func (h *ConverterHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rate := h.conv.Rate().String()

	switch {
	case q.Has("lkr"):
		raw := q.Get("lkr")
		response.OK(w, ConvertResponse{
			From:   currency.Source,
			To:     currency.Target,
			Input:  raw,
			Result: h.conv.ForwardText(raw),
			Rate:   rate,
		})
	case q.Has("vnd"):
		raw := q.Get("vnd")
		response.OK(w, ConvertResponse{
			From:   currency.Target,
			To:     currency.Source,
			Input:  raw,
			Result: h.conv.BackwardText(raw),
			Rate:   rate,
		})
	default:
		response.Error(w, http.StatusBadRequest, "Missing lkr or vnd")
	}
}
