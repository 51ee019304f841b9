package common

import (
	"errors"
	"testing"
	"time"
)

var errFalhaSimulada = errors.New("falha simulada")

func TestCircuitBreakerAbreAposFalhasConsecutivas(t *testing.T) {
	cb := NewCircuitBreaker("teste", 3, time.Minute)

	for i := 0; i < 3; i++ {
		if err := cb.Execute(func() error { return errFalhaSimulada }); !errors.Is(err, errFalhaSimulada) {
			t.Fatalf("falha %d deveria propagar o erro original, recebido %v", i, err)
		}
	}
	if cb.State() != StateOpen {
		t.Fatalf("esperado OPEN após atingir o limiar, recebido %s", cb.State())
	}

	// Com o circuito aberto a operação nem é chamada.
	chamada := false
	err := cb.Execute(func() error { chamada = true; return nil })
	if !errors.Is(err, ErrCircuitBreakerOpen) {
		t.Fatalf("esperado ErrCircuitBreakerOpen, recebido %v", err)
	}
	if chamada {
		t.Fatalf("operação não deveria ser executada com o circuito aberto")
	}
}

func TestCircuitBreakerRecuperaAposTimeout(t *testing.T) {
	cb := NewCircuitBreaker("teste", 1, 20*time.Millisecond)

	cb.Execute(func() error { return errFalhaSimulada })
	if cb.State() != StateOpen {
		t.Fatalf("esperado OPEN, recebido %s", cb.State())
	}

	time.Sleep(30 * time.Millisecond)

	// A primeira chamada após o timeout passa em half-open e fecha o circuito.
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("chamada de teste deveria passar: %v", err)
	}
	if cb.State() != StateClosed {
		t.Fatalf("esperado CLOSED após recuperação, recebido %s", cb.State())
	}
}

func TestCircuitBreakerReabreSeFalhaEmHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker("teste", 1, 20*time.Millisecond)

	cb.Execute(func() error { return errFalhaSimulada })
	time.Sleep(30 * time.Millisecond)

	cb.Execute(func() error { return errFalhaSimulada })
	if cb.State() != StateOpen {
		t.Fatalf("falha em half-open deve reabrir o circuito, recebido %s", cb.State())
	}
}

func TestCircuitBreakerSucessoZeraContagem(t *testing.T) {
	cb := NewCircuitBreaker("teste", 3, time.Minute)

	cb.Execute(func() error { return errFalhaSimulada })
	cb.Execute(func() error { return errFalhaSimulada })
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("sucesso não deveria falhar: %v", err)
	}

	// A contagem foi zerada: duas novas falhas não bastam para abrir.
	cb.Execute(func() error { return errFalhaSimulada })
	cb.Execute(func() error { return errFalhaSimulada })
	if cb.State() != StateClosed {
		t.Fatalf("esperado CLOSED com contagem zerada, recebido %s", cb.State())
	}
}
