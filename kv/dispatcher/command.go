package dispatcher

import (
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/pingcap/errors"
)

type Op string

const (
	OpPut    Op = "PUT"
	OpGet    Op = "GET"
	OpDelete Op = "DELETE"
)

var (
	ErrEmptyCommand  = errors.New("empty command")
	ErrUnknownOp     = errors.New("invalid operation, must be one of (PUT, GET, DELETE)")
	ErrMalformedLine = errors.New("malformed command")
)

// Command is one parsed line of the form OPERATION KEY [VALUE].
type Command struct {
	Op    Op
	Key   string
	Value string
}

// ParseCommand tokenizes line with shell quoting rules. OPERATION is case-insensitive and VALUE is
// accepted for PUT only.
func ParseCommand(line string) (Command, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return Command{}, errors.Annotatef(ErrMalformedLine, "%q: %v", line, err)
	}
	if len(args) == 0 {
		return Command{}, errors.Trace(ErrEmptyCommand)
	}

	cmd := Command{Op: Op(strings.ToUpper(args[0]))}
	switch cmd.Op {
	case OpPut:
		if len(args) != 3 {
			return Command{}, errors.Annotatef(ErrMalformedLine, "usage: PUT KEY VALUE, got %q", line)
		}
		cmd.Value = args[2]
	case OpGet, OpDelete:
		if len(args) != 2 {
			return Command{}, errors.Annotatef(ErrMalformedLine, "usage: %s KEY, got %q", cmd.Op, line)
		}
	default:
		return Command{}, errors.Annotatef(ErrUnknownOp, "%q", args[0])
	}
	cmd.Key = args[1]
	return cmd, nil
}
