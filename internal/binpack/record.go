package binpack

import (
	"strings"

	"github.com/ChizhovVadim/CounterGo/pkg/common"
)

// Record is one training sample: a packed board plus the score assigned to it
// and auxiliary game metadata. Transformations overwrite Score only.
type Record struct {
	Board   [32]byte
	Score   int16
	Move    uint16
	Ply     uint16
	Result  int8
	Padding uint8
}

const recordSize = 40

// EncodeMove stores from/to/promotion in 16 bits.
func EncodeMove(m common.Move) uint16 {
	return uint16(m.From()) | uint16(m.To())<<6 | uint16(m.Promotion())<<12
}

func moveFrom(m uint16) int      { return int(m & 63) }
func moveTo(m uint16) int        { return int((m >> 6) & 63) }
func movePromotion(m uint16) int { return int((m >> 12) & 7) }

func formatMove(m uint16) string {
	if m == 0 {
		return "0000"
	}
	var sPromotion = ""
	if p := movePromotion(m); p != common.Empty {
		sPromotion = string("nbrq"[p-common.Knight])
	}
	return common.SquareName(moveFrom(m)) + common.SquareName(moveTo(m)) + sPromotion
}

func parseMove(s string) (uint16, bool) {
	if len(s) < 4 {
		return 0, false
	}
	// ParseSquare does not range-check its input
	var from = common.ParseSquare(s[:2])
	var to = common.ParseSquare(s[2:4])
	if from < common.SquareA1 || from > common.SquareH8 ||
		to < common.SquareA1 || to > common.SquareH8 {
		return 0, false
	}
	var promotion = 0
	if len(s) > 4 {
		var i = strings.Index("nbrq", s[4:5])
		if i < 0 {
			return 0, false
		}
		promotion = common.Knight + i
	}
	return uint16(from) | uint16(to)<<6 | uint16(promotion)<<12, true
}
