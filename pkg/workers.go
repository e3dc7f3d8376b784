package channelmap

import (
	"errors"
	"fmt"
	"sync"
)

// Translation is the outcome of one channel of a batch.
type Translation struct {
	Channel  ChannelID
	Geometry GeometryID
	Err      error
}

type translationJob struct {
	index   int
	channel ChannelID
}

type translateFunc func(cid ChannelID) (GeometryID, error)

// translateOne never panics: a failing translation becomes the job's error.
func translateOne(id int, translate translateFunc, cid ChannelID) (result Translation) {
	result.Channel = cid
	defer func() {
		if rec := recover(); rec != nil {
			result.Geometry = GeometryID{}
			result.Err = fmt.Errorf("%w: worker %d, channel %v: %v", ErrTranslationPanic, id, cid, rec)
		}
	}()
	result.Geometry, result.Err = translate(cid)
	return result
}

func translationWorker(id int, translate translateFunc, jobs <-chan translationJob, results []Translation, l Logger) {
	for job := range jobs {
		result := translateOne(id, translate, job.channel)
		if errors.Is(result.Err, ErrTranslationPanic) {
			l.Error(result.Err.Error())
		}
		results[job.index] = result
	}
}

// TranslateChannels finds the geometry of every channel with numWorkers
// goroutines. Results keep the order of channels.
func (r *Resolver) TranslateChannels(ctx EventContext, channels []ChannelID, numWorkers int) []Translation {
	return r.translateChannels(channels, numWorkers, func(cid ChannelID) (GeometryID, error) {
		return r.GeometryFor(ctx, cid, 0)
	})
}

func (r *Resolver) translateChannels(channels []ChannelID, numWorkers int, translate translateFunc) []Translation {
	if numWorkers < 1 {
		numWorkers = 1
	}
	results := make([]Translation, len(channels))
	jobs := make(chan translationJob, numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			translationWorker(id, translate, jobs, results, r.logger)
		}(w)
	}

	for i, cid := range channels {
		jobs <- translationJob{index: i, channel: cid}
	}
	close(jobs)
	wg.Wait()
	return results
}
