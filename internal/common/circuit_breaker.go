package common

import (
	"errors"
	"log"
	"sync"
	"time"
)

// CircuitBreakerState define os possíveis estados do circuit breaker
type CircuitBreakerState string

const (
	StateClosed   CircuitBreakerState = "CLOSED"    // Funcionamento normal
	StateOpen     CircuitBreakerState = "OPEN"      // Interrompido devido a falhas
	StateHalfOpen CircuitBreakerState = "HALF_OPEN" // Testando recuperação
)

// ErrCircuitBreakerOpen é retornado quando o circuito rejeita a chamada
var ErrCircuitBreakerOpen = errors.New("circuit breaker está aberto")

// CircuitBreaker protege um recurso externo (banco de auditoria, Redis) de
// falhas em cascata: após um número de falhas consecutivas as chamadas são
// rejeitadas imediatamente até o período de recuperação expirar.
type CircuitBreaker struct {
	name             string
	failureThreshold int
	resetTimeout     time.Duration

	mutex           sync.Mutex
	state           CircuitBreakerState
	failureCount    int
	lastStateChange time.Time
}

// NewCircuitBreaker cria um circuit breaker no estado fechado
func NewCircuitBreaker(name string, failureThreshold int, resetTimeout time.Duration) *CircuitBreaker {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	if resetTimeout <= 0 {
		resetTimeout = 10 * time.Second
	}
	return &CircuitBreaker{
		name:             name,
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		state:            StateClosed,
		lastStateChange:  time.Now(),
	}
}

// Execute executa a operação sob proteção do circuit breaker
func (cb *CircuitBreaker) Execute(operation func() error) error {
	cb.mutex.Lock()

	switch cb.state {
	case StateOpen:
		if time.Since(cb.lastStateChange) > cb.resetTimeout {
			cb.changeState(StateHalfOpen)
		} else {
			cb.mutex.Unlock()
			return ErrCircuitBreakerOpen
		}
	case StateHalfOpen:
		// Apenas uma chamada de teste por vez em half-open.
	}

	cb.mutex.Unlock()

	err := operation()

	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if err != nil {
		cb.failureCount++
		if cb.state == StateHalfOpen || cb.failureCount >= cb.failureThreshold {
			cb.changeState(StateOpen)
		}
		return err
	}

	if cb.state == StateHalfOpen || cb.failureCount > 0 {
		cb.changeState(StateClosed)
	}
	return nil
}

// State retorna o estado atual do circuit breaker
func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.state
}

// changeState altera o estado; o chamador deve deter o mutex
func (cb *CircuitBreaker) changeState(newState CircuitBreakerState) {
	if cb.state == newState {
		return
	}
	old := cb.state
	cb.state = newState
	cb.lastStateChange = time.Now()
	if newState == StateClosed {
		cb.failureCount = 0
	}
	log.Printf("Circuit Breaker '%s': Estado alterado de %s para %s", cb.name, old, newState)
}
