package entity

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""

	CenterCell = 4
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

var (
	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}

	// CellLabels - human-readable board coordinates, row-major: row letter, column number.
	CellLabels = [9]string{"A1", "A2", "A3", "B1", "B2", "B3", "C1", "C2", "C3"}

	// RowLabels - the row letters of CellLabels, by row index.
	RowLabels = [3]string{"A", "B", "C"}
)

// Game - a full game position. The whole struct round-trips through the
// state token, no copy is kept on the server between interactions.
type Game struct {
	Board      [9]string `json:"board"`
	Turn       string    `json:"player_turn,omitempty"`
	Winner     string    `json:"winner,omitempty"`
	Status     string    `json:"status"`
	Difficulty string    `json:"difficulty,omitempty"`
}

func NewGame(difficulty string) *Game {
	return &Game{
		Board:      [9]string{EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell},
		Turn:       PlayerX,
		Status:     StatusOngoing,
		Difficulty: difficulty,
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// MarksCount - how many cells are occupied by either mark.
func (that *Game) MarksCount() int {
	count := 0
	for _, cell := range that.Board {
		if cell != EmptyCell {
			count++
		}
	}

	return count
}

// EmptyCells - indexes of all free cells in ascending order.
func (that *Game) EmptyCells() []int {
	cells := make([]int, 0, len(that.Board))
	for i, cell := range that.Board {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

// EmptyCellsInRow - indexes of the free cells in one board row, ascending.
func (that *Game) EmptyCellsInRow(row int) []int {
	cells := make([]int, 0, 3)
	for i := row * 3; i < row*3+3; i++ {
		if that.Board[i] == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}
