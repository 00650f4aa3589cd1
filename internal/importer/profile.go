package importer

import "slices"

type column int

const (
	colName column = iota
	colAmount
	colDate
	colNotes
)

// headerAliases lists the accepted header spellings per column, compared
// after normalize. Exports from Portuguese, Spanish, French and German
// spreadsheets are common.
var headerAliases = map[column][]string{
	colName:   {"name", "nome", "nombre", "nom", "from", "de", "von", "contributor", "guest", "convidado"},
	colAmount: {"amount", "valor", "montante", "importe", "montant", "betrag", "value", "gift"},
	colDate:   {"date", "data", "fecha", "datum"},
	colNotes:  {"notes", "note", "notas", "bemerkung", "comentario", "comment"},
}

// layout maps columns to their index in a row.
type layout map[column]int

// positional is used when the file carries no recognizable header:
// name;amount;date;notes.
var positional = layout{colName: 0, colAmount: 1, colDate: 2, colNotes: 3}

// detectHeader reports the layout of row when it looks like a header. Name
// and amount are required.
func detectHeader(row []string) (layout, bool) {
	l := make(layout)

	for i, cell := range row {
		name := normalize(cell)

		for col, aliases := range headerAliases {
			if _, seen := l[col]; seen {
				continue
			}

			if slices.Contains(aliases, name) {
				l[col] = i
			}
		}
	}

	_, hasName := l[colName]
	_, hasAmount := l[colAmount]

	return l, hasName && hasAmount
}

func (l layout) cell(row []string, col column) string {
	idx, ok := l[col]
	if !ok || idx >= len(row) {
		return ""
	}

	return trim(row[idx])
}
