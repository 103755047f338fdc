//go:build !headless

package main

import (
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
)

type player interface {
	Play()
	Close() error
}

func newPlayer(sampleRate int, r io.Reader) (player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   40 * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	return ctx.NewPlayer(r), nil
}
