// Package events executa efeitos colaterais (persistência, tendências, publicação)
// fora do caminho da resposta. Falhas são registradas e nunca chegam ao usuário.
package events

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// ErrClosed indica Submit depois de Close
var ErrClosed = errors.New("dispatcher encerrado")

// Task é um efeito colateral nomeado
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// DispatcherConfig configura o pool de workers
type DispatcherConfig struct {
	Workers     int
	QueueSize   int
	TaskTimeout time.Duration
	// OnFailure é chamado para cada tarefa que falhou ou entrou em pânico
	OnFailure func(task string, err error)
}

// DefaultDispatcherConfig retorna a configuração padrão
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		Workers:     4,
		QueueSize:   256,
		TaskTimeout: 10 * time.Second,
	}
}

// Dispatcher é uma fila limitada servida por workers
type Dispatcher struct {
	cfg    DispatcherConfig
	queue  chan Task
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	inline bool
}

// NewDispatcher inicia os workers
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	def := DefaultDispatcherConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = def.TaskTimeout
	}

	d := &Dispatcher{cfg: cfg, queue: make(chan Task, cfg.QueueSize)}
	for i := 0; i < cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// NewInlineDispatcher executa cada tarefa dentro do Submit (CLI e testes)
func NewInlineDispatcher(onFailure func(task string, err error)) *Dispatcher {
	cfg := DefaultDispatcherConfig()
	cfg.OnFailure = onFailure
	return &Dispatcher{cfg: cfg, inline: true}
}

// Submit enfileira a tarefa sem bloquear. Retorna false quando a fila está cheia
// ou o dispatcher já foi encerrado; a tarefa é descartada.
func (d *Dispatcher) Submit(task Task) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.fail(task.Name, ErrClosed)
		return false
	}
	if d.inline {
		d.run(task)
		return true
	}

	select {
	case d.queue <- task:
		return true
	default:
		d.fail(task.Name, errors.New("fila cheia, tarefa descartada"))
		return false
	}
}

// Close para de aceitar tarefas e espera a fila esvaziar até o prazo do ctx
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	if !d.inline {
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("tarefas pendentes no encerramento: %w", ctx.Err())
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for task := range d.queue {
		d.run(task)
	}
}

func (d *Dispatcher) run(task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.TaskTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.fail(task.Name, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := task.Run(ctx); err != nil {
		d.fail(task.Name, err)
	}
}

func (d *Dispatcher) fail(name string, err error) {
	log.Printf("[Events] Tarefa %s falhou: %v", name, err)
	if d.cfg.OnFailure != nil {
		d.cfg.OnFailure(name, err)
	}
}
