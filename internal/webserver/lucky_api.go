package webserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ichi0g0y/lucky-by-birthday/internal/lottery"
	"github.com/ichi0g0y/lucky-by-birthday/internal/shared/logger"
	"github.com/ichi0g0y/lucky-by-birthday/internal/types"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const qrImageSize = 256

type luckyResponse struct {
	Numbers      []int               `json:"numbers"`
	Bonus        int                 `json:"bonus"`
	Seed         int64               `json:"seed"`
	NumberColors []lottery.BallColor `json:"number_colors"`
	BonusColor   lottery.BallColor   `json:"bonus_color"`
}

// handleLucky は POST /api/lucky でローカル抽選をHTTP越しに提供する
func handleLucky(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	var fields types.BirthFields
	if err := decodeJSONBody(w, r, &fields); err != nil {
		writeJSONError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	result, status, err := drawFromFields(fields)
	if err != nil {
		writeJSONError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, luckyResponse{
		Numbers:      result.Numbers,
		Bonus:        result.Bonus,
		Seed:         result.Seed,
		NumberColors: lottery.Colors(result.Numbers),
		BonusColor:   lottery.ColorOf(result.Bonus),
	})
}

// handleLuckyQR は GET /api/lucky/qr で抽選結果をQRコード(PNG)として返す
func handleLuckyQR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	fields := types.BirthFields{
		Year:   types.FlexString(strings.TrimSpace(q.Get("year"))),
		Month:  types.FlexString(strings.TrimSpace(q.Get("month"))),
		Day:    types.FlexString(strings.TrimSpace(q.Get("day"))),
		Hour:   types.FlexString(strings.TrimSpace(q.Get("hour"))),
		Minute: types.FlexString(strings.TrimSpace(q.Get("minute"))),
	}

	result, status, err := drawFromFields(fields)
	if err != nil {
		writeJSONError(w, status, err.Error())
		return
	}

	png, err := qrcode.Encode(FormatTicket(result.LuckyDraw), qrcode.Medium, qrImageSize)
	if err != nil {
		logger.Error("Failed to encode lucky QR code", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

// FormatTicket renders a draw the way it is printed on a slip: "LUCKY 06 19 20 27 43 44 + 41".
func FormatTicket(draw types.LuckyDraw) string {
	parts := make([]string, 0, len(draw.Numbers))
	for _, n := range draw.Numbers {
		parts = append(parts, fmt.Sprintf("%02d", n))
	}
	return fmt.Sprintf("LUCKY %s + %02d", strings.Join(parts, " "), draw.Bonus)
}

func drawFromFields(fields types.BirthFields) (*lottery.DrawResult, int, error) {
	input, err := lottery.ParseBirthFields(fields)
	if err != nil {
		if errors.Is(err, lottery.ErrMissingBirthDate) {
			return nil, http.StatusBadRequest, errors.New(msgMissingBirthDate)
		}
		return nil, http.StatusBadRequest, err
	}

	result, err := lottery.Draw(input)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return result, http.StatusOK, nil
}
