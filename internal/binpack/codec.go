package binpack

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/ChizhovVadim/CounterGo/pkg/common"
)

// Packed board layout:
//   bytes 0..7   occupancy bitboard, little endian
//   bytes 8..23  one nibble per occupied square in ascending square order,
//                piece type 1..6, bit 3 set for black
//   byte 24      bit 0 side to move is black, bits 1..4 castle rights
//   byte 25      en passant square + 1, 0 if none
//   byte 26      halfmove clock
// Remaining bytes are zero.

func PackPosition(p *common.Position) [32]byte {
	var b [32]byte
	var occupied = p.White | p.Black
	binary.LittleEndian.PutUint64(b[:8], occupied)
	var index = 0
	for x := occupied; x != 0; x &= x - 1 {
		var sq = bits.TrailingZeros64(x)
		var piece, side = p.GetPieceTypeAndSide(sq)
		var code = byte(piece)
		if !side {
			code |= 8
		}
		if index%2 == 0 {
			b[8+index/2] = code
		} else {
			b[8+index/2] |= code << 4
		}
		index++
	}
	var flags = byte(p.CastleRights) << 1
	if !p.WhiteMove {
		flags |= 1
	}
	b[24] = flags
	if p.EpSquare != common.SquareNone {
		b[25] = byte(p.EpSquare + 1)
	}
	b[26] = byte(p.Rule50)
	return b
}

func UnpackPosition(b [32]byte) (common.Position, error) {
	var board [64]byte
	var occupied = binary.LittleEndian.Uint64(b[:8])
	var index = 0
	for x := occupied; x != 0; x &= x - 1 {
		var sq = bits.TrailingZeros64(x)
		var code = b[8+index/2]
		if index%2 == 0 {
			code &= 15
		} else {
			code >>= 4
		}
		var piece = int(code & 7)
		if piece < common.Pawn || piece > common.King {
			return common.Position{}, fmt.Errorf("unpack position: bad piece code %v", code)
		}
		var ch = "pnbrqk"[piece-common.Pawn]
		if code&8 == 0 {
			board[sq] = ch - 'a' + 'A'
		} else {
			board[sq] = ch
		}
		index++
	}
	if b[25] > 64 {
		return common.Position{}, fmt.Errorf("unpack position: bad en passant byte %v", b[25])
	}
	return common.NewPositionFromFEN(buildFen(&board, b[24], b[25], b[26]))
}

func buildFen(board *[64]byte, flags, epPlus1, rule50 byte) string {
	var sb strings.Builder

	for rank := common.Rank8; rank >= common.Rank1; rank-- {
		var emptyCount = 0
		for file := common.FileA; file <= common.FileH; file++ {
			var ch = board[common.MakeSquare(file, rank)]
			if ch == 0 {
				emptyCount++
				continue
			}
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(ch)
		}
		if emptyCount != 0 {
			sb.WriteString(strconv.Itoa(emptyCount))
		}
		if rank != common.Rank1 {
			sb.WriteString("/")
		}
	}

	if flags&1 == 0 {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	var cr = int(flags >> 1)
	if cr == 0 {
		sb.WriteString("-")
	} else {
		if cr&common.WhiteKingSide != 0 {
			sb.WriteString("K")
		}
		if cr&common.WhiteQueenSide != 0 {
			sb.WriteString("Q")
		}
		if cr&common.BlackKingSide != 0 {
			sb.WriteString("k")
		}
		if cr&common.BlackQueenSide != 0 {
			sb.WriteString("q")
		}
	}
	sb.WriteString(" ")

	if epPlus1 == 0 {
		sb.WriteString("-")
	} else {
		sb.WriteString(common.SquareName(int(epPlus1) - 1))
	}

	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(int(rule50)))
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(int(rule50)/2 + 1))

	return sb.String()
}
