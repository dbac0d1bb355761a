package proto

// Cell markers used when a board is flattened for display.
const (
	MarkX     = 'X'
	MarkO     = 'O'
	MarkEmpty = '.'
)

// SessionSnapshot is the display view of a play session.
type SessionSnapshot struct {
	Type        string     `json:"type"`
	SessionID   string     `json:"sessionId"`
	Board       [][]string `json:"board"`
	Status      string     `json:"status"`
	Next        string     `json:"next,omitempty"`
	Winner      string     `json:"winner,omitempty"`
	WinningLine [][]int    `json:"winningLine,omitempty"`
	GameOver    bool       `json:"gameOver"`
}
