package game

import "strconv"

// Engine превращает строку ввода в ответ и новое состояние.
// Реализации не делают I/O и всегда завершаются.
type Engine interface {
	Process(state State, input string) (State, string)
}

// CounterEngine - заглушка: считает сообщения и отвечает номером.
type CounterEngine struct{}

func (CounterEngine) Process(state State, _ string) (State, string) {
	state.MessageCount++
	return state, strconv.FormatUint(state.MessageCount, 10)
}
