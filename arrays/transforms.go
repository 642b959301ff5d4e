package arrays

import (
	"context"

	"golang.org/x/sync/errgroup"
)

func Map[InputType, OutputType any](input []InputType, f func(InputType) OutputType) []OutputType {
	result := make([]OutputType, len(input))
	for i, v := range input {
		result[i] = f(v)
	}
	return result
}

func Filter[ArrayType any](input []ArrayType, f func(ArrayType) bool) []ArrayType {
	result := []ArrayType{}

	for _, v := range input {
		if f(v) {
			result = append(result, v)
		}
	}
	return result
}

// ParallelMap applies f to every element concurrently and waits for all of them. The output is index aligned
// with the input regardless of completion order. The first error cancels the context handed to the remaining
// calls and is returned once every call has finished.
func ParallelMap[InputType, OutputType any](
	ctx context.Context,
	input []InputType,
	f func(context.Context, InputType) (OutputType, error),
) ([]OutputType, error) {
	result := make([]OutputType, len(input))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, v := range input {
		i, v := i, v
		group.Go(func() error {
			output, err := f(groupCtx, v)
			if err != nil {
				return err
			}
			result[i] = output
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
