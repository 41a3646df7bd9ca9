package health

import "context"

// Pinger checks that the backing database answers.
type Pinger interface {
	Ping(ctx context.Context) error
	// Name is the human readable database name, e.g. "MongoDB".
	Name() string
}

type FakePinger struct {
	DatabaseName string
	Err          error
	Pinged       int
}

func NewFakePinger(name string, err error) *FakePinger {
	return &FakePinger{DatabaseName: name, Err: err}
}

func (p *FakePinger) Ping(ctx context.Context) error {
	p.Pinged++
	return p.Err
}

func (p *FakePinger) Name() string {
	return p.DatabaseName
}
