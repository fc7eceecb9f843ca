package inline

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Answer is a complete reply to one inline query.
type Answer struct {
	QueryID    string
	Results    []*Result
	CacheTime  int
	IsPersonal bool
	NextOffset string

	SwitchPMText      string
	SwitchPMParameter string
}

// Answerer transmits answers. Errors must be returned unchanged.
type Answerer interface {
	AnswerInlineQuery(ctx context.Context, a *Answer) error
}

// WriteAll serializes results concurrently. If any fails, no results are returned.
func WriteAll(ctx context.Context, c Client, results []*InlineFileResult) ([]*Result, error) {
	out := make([]*Result, len(results))
	errs := make([]error, len(results))

	wg := sync.WaitGroup{}
	wg.Add(len(results))
	for i := range results {
		go func(i int) {
			defer wg.Done()
			out[i], errs[i] = results[i].Write(ctx, c)
		}(i)
	}
	wg.Wait()

	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// AnswerQuery writes results into a and sends it.
func AnswerQuery(ctx context.Context, c Client, answerer Answerer, a *Answer, results []*InlineFileResult) error {
	written, err := WriteAll(ctx, c, results)
	if err != nil {
		return err
	}
	a.Results = written
	return answerer.AnswerInlineQuery(ctx, a)
}
