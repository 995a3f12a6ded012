package debounce

// WriterInterface определяет интерфейс дебаунсера отложенных записей
type WriterInterface interface {
	// Trigger откладывает выполнение fn на окно тишины ключа
	Trigger(key string, fn func())
	// Flush немедленно выполняет отложенную запись ключа
	Flush(key string)
	// FlushAll немедленно выполняет все отложенные записи
	FlushAll()
	// Cancel отбрасывает отложенную запись ключа
	Cancel(key string)
}
