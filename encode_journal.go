package margin

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeJournal decodes commands from a stream of JSONL data and returns them
// as a Journal. Every command is validated; the first invalid line is reported
// with its line number.
func DecodeJournal(r io.Reader) (*Journal, error) {
	j := NewJournal()
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		cmd, err := decodeCommand(lineBytes)
		if err != nil {
			return nil, fmt.Errorf("journal line %d: %w", n, err)
		}
		if err := cmd.Validate(); err != nil {
			return nil, fmt.Errorf("journal line %d: invalid %s command: %w", n, cmd.What(), err)
		}
		j.Append(cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return j, nil
}

// decodeCommand decodes a single JSON line into the appropriate command.
func decodeCommand(line []byte) (Command, error) {
	var identifier struct {
		Command CommandType `json:"command"`
	}
	if err := json.Unmarshal(line, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify command in line %q: %w", string(line), err)
	}

	switch identifier.Command {
	case CmdAdd:
		var temp struct {
			codeCmd
			Name           string              `json:"name"`
			ReferencePrice decimal.NullDecimal `json:"referencePrice"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		return Add{codeCmd: temp.codeCmd, Name: temp.Name, ReferencePrice: temp.ReferencePrice}, nil

	case CmdSet:
		var temp struct {
			codeCmd
			Field string              `json:"field"`
			Value decimal.NullDecimal `json:"value"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		field, err := ParseField(temp.Field)
		if err != nil {
			return nil, err
		}
		return Set{codeCmd: temp.codeCmd, Field: field, Value: temp.Value}, nil

	case CmdRemove:
		var temp codeCmd
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		return Remove{temp}, nil

	case CmdClear:
		var temp baseCmd
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		return Clear{temp}, nil

	case CmdUndo:
		var temp baseCmd
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		return Undo{temp}, nil

	case CmdApplyMargin, CmdApplyMarkup:
		var temp struct {
			baseCmd
			Target decimal.NullDecimal `json:"target"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		if !temp.Target.Valid {
			return nil, fmt.Errorf("%s: target is missing", identifier.Command)
		}
		t := targetCmd{temp.baseCmd, temp.Target.Decimal}
		if identifier.Command == CmdApplyMargin {
			return ApplyMargin{t}, nil
		}
		return ApplyMarkup{t}, nil

	case CmdLoad:
		var temp struct {
			baseCmd
			Code   string              `json:"code"`
			Name   string              `json:"name"`
			Cost   decimal.NullDecimal `json:"cost"`
			Price  decimal.NullDecimal `json:"price"`
			Markup decimal.NullDecimal `json:"markup"`
			Margin decimal.NullDecimal `json:"margin"`
			Locked FieldSet            `json:"locked"`
		}
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, err
		}
		return Load{temp.baseCmd, Row{
			Code:   temp.Code,
			Name:   temp.Name,
			Cost:   temp.Cost,
			Price:  temp.Price,
			Markup: temp.Markup,
			Margin: temp.Margin,
			Locked: temp.Locked,
		}}, nil

	default:
		return nil, fmt.Errorf("unknown journal command: %q", identifier.Command)
	}
}

// EncodeCommand marshals a single command to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeCommand(w io.Writer, cmd Command) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal %s command: %w", cmd.What(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write command: %w", err)
	}
	return nil
}

// EncodeJournal writes every command of j in JSONL format.
func EncodeJournal(w io.Writer, j *Journal) error {
	for _, cmd := range j.Commands() {
		if err := EncodeCommand(w, cmd); err != nil {
			return err
		}
	}
	return nil
}
