package tasks

// DefineTasks registers all available tasks
func DefineTasks() {
	// Reconciliation jobs
	RegisterHandler(PaymentReminderTask.TaskID(), PaymentReminderTask.HandleExecution)
	RegisterHandler(MonthlySummaryTask.TaskID(), MonthlySummaryTask.HandleExecution)
}
