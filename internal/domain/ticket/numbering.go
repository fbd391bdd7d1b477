package ticket

import (
	"context"
	"fmt"
	"strings"

	"github.com/trackr-io/trackr/internal/shared/biztime"
	"github.com/trackr-io/trackr/internal/shared/constants"
)

// NumberGenerator issues the next ticket number for a project. It is called
// inside the ticket-create transaction.
type NumberGenerator interface {
	Next(ctx context.Context, projectID uint, projectKey string) (string, error)
}

// SequenceCounter returns strictly increasing values per scope.
type SequenceCounter interface {
	Increment(ctx context.Context, scope string) (int64, error)
}

const globalScope = "global"

// Numberer formats counter values under one of the two numbering schemes.
type Numberer struct {
	scheme  string
	prefix  string
	counter SequenceCounter
}

func NewNumberer(scheme, prefix string, counter SequenceCounter) (*Numberer, error) {
	switch scheme {
	case "":
		scheme = constants.NumberingSchemeGlobal
	case constants.NumberingSchemeGlobal, constants.NumberingSchemeProject:
	default:
		return nil, fmt.Errorf("unknown ticket numbering scheme %q", scheme)
	}
	if prefix == "" {
		prefix = constants.DefaultTicketPrefix
	}
	if counter == nil {
		return nil, fmt.Errorf("sequence counter is required")
	}
	return &Numberer{scheme: scheme, prefix: strings.ToUpper(prefix), counter: counter}, nil
}

func (n *Numberer) Next(ctx context.Context, projectID uint, projectKey string) (string, error) {
	if n.scheme == constants.NumberingSchemeProject {
		if projectKey == "" {
			return "", fmt.Errorf("project key is required for project scoped numbering")
		}
		seq, err := n.counter.Increment(ctx, fmt.Sprintf("project:%d", projectID))
		if err != nil {
			return "", fmt.Errorf("failed to increment project ticket sequence: %w", err)
		}
		return FormatProjectNumber(projectKey, seq), nil
	}

	seq, err := n.counter.Increment(ctx, globalScope)
	if err != nil {
		return "", fmt.Errorf("failed to increment ticket sequence: %w", err)
	}
	return FormatGlobalNumber(n.prefix, biztime.YearTwoDigits(biztime.NowUTC()), seq), nil
}

// FormatGlobalNumber renders e.g. TICK260001.
func FormatGlobalNumber(prefix string, yy int, seq int64) string {
	return fmt.Sprintf("%s%02d%04d", prefix, yy, seq)
}

// FormatProjectNumber renders e.g. CP-12.
func FormatProjectNumber(key string, seq int64) string {
	return fmt.Sprintf("%s-%d", key, seq)
}
