// Package rules adapts the dragontoothmg move generator to the value-typed
// position the search works with. It is the rules oracle: legal move
// generation, check detection, successor positions and zobrist hashing all
// come from dragontoothmg.
package rules

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// Startpos is the FEN of the initial chess position.
const Startpos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that is not legal in the position.
	ErrIllegalMove = errors.New("illegal move")
)

// Color is a side.
type Color uint8

const (
	White Color = iota
	Black
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	return c ^ 1
}

// Sign is +1 for White and -1 for Black.
func (c Color) Sign() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType identifies a kind of piece. Values match dragontoothmg.
type PieceType uint8

const (
	NoPieceType PieceType = PieceType(dragontoothmg.Nothing)
	Pawn        PieceType = PieceType(dragontoothmg.Pawn)
	Knight      PieceType = PieceType(dragontoothmg.Knight)
	Bishop      PieceType = PieceType(dragontoothmg.Bishop)
	Rook        PieceType = PieceType(dragontoothmg.Rook)
	Queen       PieceType = PieceType(dragontoothmg.Queen)
	King        PieceType = PieceType(dragontoothmg.King)
)

// PieceTypes lists every real piece type, pawn first.
var PieceTypes = [...]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

// Piece is a coloured piece standing on a square.
type Piece struct {
	Type  PieceType
	Color Color
}

// Square indexes the board a1 = 0 ... h8 = 63.
type Square uint8

// NoSquare marks the absence of a square.
const NoSquare Square = 64

// NewSquare builds a square from zero-based file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// File returns the zero-based file (a = 0).
func (s Square) File() int { return int(s) % 8 }

// Rank returns the zero-based rank (1st rank = 0).
func (s Square) Rank() int { return int(s) / 8 }

func (s Square) String() string {
	if s >= NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// Move is an opaque move token produced by the oracle.
type Move dragontoothmg.Move

// NoMove is the zero move.
const NoMove Move = 0

// From returns the origin square.
func (m Move) From() Square {
	dm := dragontoothmg.Move(m)
	return Square(dm.From())
}

// To returns the destination square.
func (m Move) To() Square {
	dm := dragontoothmg.Move(m)
	return Square(dm.To())
}

// Promotion returns the promotion piece type, or NoPieceType.
func (m Move) Promotion() PieceType {
	dm := dragontoothmg.Move(m)
	return PieceType(dm.Promote())
}

// String returns the move in UCI long algebraic notation.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	dm := dragontoothmg.Move(m)
	return dm.String()
}

// Position is an immutable board snapshot. It is passed by value; Play
// returns a successor instead of mutating the receiver.
type Position struct {
	board dragontoothmg.Board
}

// NewPosition returns the initial position.
func NewPosition() Position {
	pos, err := FromFEN(Startpos)
	if err != nil {
		panic(err)
	}
	return pos
}

// Hash returns the 64-bit zobrist key of the position.
func (p Position) Hash() uint64 {
	return p.board.Hash()
}

// SideToMove returns the side whose turn it is.
func (p Position) SideToMove() Color {
	if p.board.Wtomove {
		return White
	}
	return Black
}

// LegalMoves enumerates the legal moves in oracle order.
func (p Position) LegalMoves() []Move {
	generated := p.board.GenerateLegalMoves()
	moves := make([]Move, len(generated))
	for i, m := range generated {
		moves[i] = Move(m)
	}
	return moves
}

// InCheck reports whether the side to move is in check.
func (p Position) InCheck() bool {
	return p.board.OurKingInCheck()
}

// Play returns the position after m. The receiver is left untouched.
func (p Position) Play(m Move) Position {
	next := p
	next.board.Apply(dragontoothmg.Move(m))
	return next
}

// Occupancy returns the bitboard of squares holding pieces of side c.
func (p Position) Occupancy(c Color) uint64 {
	return p.bitboards(c).All
}

// IsCapture reports whether m lands on a square occupied by the opponent.
// En passant captures land on an empty square and are not counted.
func (p Position) IsCapture(m Move) bool {
	return p.Occupancy(p.SideToMove().Opponent())&(uint64(1)<<m.To()) != 0
}

// Count returns how many pieces of type pt side c has.
func (p Position) Count(c Color, pt PieceType) int {
	return bits.OnesCount64(pieceBitboard(p.bitboards(c), pt))
}

// PieceAt returns the piece on sq, if any.
func (p Position) PieceAt(sq Square) (Piece, bool) {
	mask := uint64(1) << sq
	for _, c := range [...]Color{White, Black} {
		bbs := p.bitboards(c)
		if bbs.All&mask == 0 {
			continue
		}
		for _, pt := range PieceTypes {
			if pieceBitboard(bbs, pt)&mask != 0 {
				return Piece{Type: pt, Color: c}, true
			}
		}
	}
	return Piece{}, false
}

// FindMove returns the legal move whose UCI spelling is uci.
func (p Position) FindMove(uci string) (Move, error) {
	for _, m := range p.LegalMoves() {
		if m.String() == uci {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s in %s", ErrIllegalMove, uci, p.FEN())
}

func (p Position) bitboards(c Color) dragontoothmg.Bitboards {
	if c == White {
		return p.board.White
	}
	return p.board.Black
}

func pieceBitboard(bbs dragontoothmg.Bitboards, pt PieceType) uint64 {
	switch pt {
	case Pawn:
		return bbs.Pawns
	case Knight:
		return bbs.Knights
	case Bishop:
		return bbs.Bishops
	case Rook:
		return bbs.Rooks
	case Queen:
		return bbs.Queens
	case King:
		return bbs.Kings
	}
	return 0
}
