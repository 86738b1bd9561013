package hotkey

import (
	"errors"
	"testing"
	"time"

	"shortboard/binding"
)

func TestFakeFactoryReusesPerCombo(t *testing.T) {
	ff := NewFakeFactory()
	c := binding.MustParse("ctrl+alt+f")

	a, err := ff.New(c)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ff.New(binding.MustParse("alt+ctrl+f"))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("expected the same fake for equal combos")
	}
	if ff.Get(c) != a {
		t.Error("Get should return the built fake")
	}
	if ff.Get(binding.MustParse("ctrl+alt+g")) != nil {
		t.Error("Get should return nil for unknown combo")
	}
}

func TestFakeFactoryRejectsZeroCombo(t *testing.T) {
	if _, err := NewFakeFactory().New(binding.Combo{}); !errors.Is(err, binding.ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
}

func TestFakeFailRegister(t *testing.T) {
	ff := NewFakeFactory()
	c := binding.MustParse("ctrl+shift+space")
	taken := errors.New("taken")

	hk, _ := ff.New(c)
	ff.FailRegister(c, taken)
	if err := hk.Register(); !errors.Is(err, taken) {
		t.Errorf("Register err = %v, want %v", err, taken)
	}
	if ff.Get(c).Registered() {
		t.Error("failed register must not mark registered")
	}
}

func TestFakeRegisterUnregister(t *testing.T) {
	fk := NewFake()
	if err := fk.Register(); err != nil {
		t.Fatal(err)
	}
	if !fk.Registered() {
		t.Error("expected registered")
	}
	fk.Unregister()
	if fk.Registered() {
		t.Error("expected unregistered")
	}
}

func TestForwardStops(t *testing.T) {
	src := make(chan struct{}, 1)
	dst := make(chan struct{}, 1)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		forward(src, dst, stop)
		close(done)
	}()

	src <- struct{}{}
	select {
	case <-dst:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for forwarded event")
	}

	close(stop)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forward did not return after stop")
	}
}
