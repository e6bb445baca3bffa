package injector_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/centraunit/injector"
	"github.com/centraunit/injector/mock"
	"github.com/stretchr/testify/suite"
)

type ConcurrentTestSuite struct {
	suite.Suite
	counter *mock.Counter
	svc     *injector.Class
	c       *injector.Container
}

func (s *ConcurrentTestSuite) SetupTest() {
	s.counter = &mock.Counter{}
	s.svc = s.counter.Class("Svc")
	s.c = injector.MustNew(s.svc)
}

func (s *ConcurrentTestSuite) TestConcurrentGet() {
	var wg sync.WaitGroup
	results := make(chan any, 20)
	errors := make(chan error, 20)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := s.c.Get(s.svc)
			if err != nil {
				errors <- err
				return
			}
			results <- v
		}()
	}

	wg.Wait()
	close(results)
	close(errors)

	for err := range errors {
		s.NoError(err)
	}

	cached, err := s.c.Get(s.svc)
	s.Require().NoError(err)
	for v := range results {
		s.Same(cached, v, "every caller should observe the first cached instance")
	}
}

func (s *ConcurrentTestSuite) TestConcurrentRegistration() {
	var wg sync.WaitGroup
	errors := make(chan error, 20)

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			undo, err := s.c.AddProviders([]injector.Provider{
				{Provide: injector.Name(fmt.Sprintf("key-%d", id)), UseValue: id},
			}, true)
			if err != nil {
				errors <- err
				return
			}
			if id%2 == 0 {
				undo()
			}
		}(i)
		go func() {
			defer wg.Done()
			if _, err := s.c.Get(s.svc); err != nil {
				errors <- err
			}
		}()
	}

	wg.Wait()
	close(errors)

	for err := range errors {
		s.NoError(err)
	}
	s.True(s.c.Has(s.svc))
}

func (s *ConcurrentTestSuite) TestConcurrentChildren() {
	var wg sync.WaitGroup
	errors := make(chan error, 20)

	_, err := s.c.Get(s.svc)
	s.Require().NoError(err)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			child, err := s.c.Child(injector.Provider{Provide: mock.RequestID, UseValue: fmt.Sprintf("req-%d", id)})
			if err != nil {
				errors <- err
				return
			}
			reqID, err := injector.ResolveToken(child, mock.RequestID)
			if err != nil {
				errors <- err
				return
			}
			if reqID != fmt.Sprintf("req-%d", id) {
				errors <- fmt.Errorf("child %d resolved %s", id, reqID)
			}
			if _, err := child.Get(s.svc); err != nil {
				errors <- err
			}
		}(i)
	}

	wg.Wait()
	close(errors)

	for err := range errors {
		s.NoError(err)
	}
	s.Equal(int64(1), s.counter.Count(), "children share the parent's singleton")
}

func (s *ConcurrentTestSuite) TestReplaceDuringResolution() {
	key := injector.Name("A")
	started := make(chan struct{})
	release := make(chan struct{})
	c := injector.MustNew(injector.Provider{
		Provide: key,
		UseFactory: func([]any) any {
			close(started)
			<-release
			return "old"
		},
	})

	done := make(chan any, 1)
	go func() {
		v, err := c.Get(key)
		if err != nil {
			done <- err
			return
		}
		done <- v
	}()

	<-started
	_, err := c.AddProviders([]injector.Provider{{Provide: key, UseValue: "new"}}, true)
	s.Require().NoError(err)
	close(release)

	s.Equal("old", <-done, "the in-flight lookup keeps the value it built")

	v, err := c.Get(key)
	s.Require().NoError(err)
	s.Equal("new", v, "a value built by a replaced provider must not be cached")
}

func (s *ConcurrentTestSuite) TestUndoDuringResolution() {
	key := injector.Name("A")
	started := make(chan struct{})
	release := make(chan struct{})
	c := injector.MustNew(injector.Provider{Provide: key, UseValue: "base"})

	undo, err := c.AddProviders([]injector.Provider{{
		Provide: key,
		UseFactory: func([]any) any {
			close(started)
			<-release
			return "override"
		},
	}}, true)
	s.Require().NoError(err)

	done := make(chan any, 1)
	go func() {
		v, _ := c.Get(key)
		done <- v
	}()

	<-started
	undo()
	close(release)
	s.Equal("override", <-done)

	v, err := c.Get(key)
	s.Require().NoError(err)
	s.Equal("base", v)
}

func TestConcurrentSuite(t *testing.T) {
	suite.Run(t, new(ConcurrentTestSuite))
}
