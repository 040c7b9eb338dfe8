package service

import "fmt"

// CategoryCount - сколько категорий просим у модели для рулетки.
const CategoryCount = 5

func buildCategoriesPrompt(topic string) string {
	return fmt.Sprintf(`Genera un array JSON con %d categorías de cálculo mental para una ruleta sobre el tema: "%s". El formato debe ser un array de strings, por ejemplo: ["Sumas", "Restas", "Multiplicación"].`, CategoryCount, topic)
}

func buildQuestionPrompt(selection string) string {
	return fmt.Sprintf(`Genera una pregunta de cálculo mental muy corta y simple para un niño de primaria sobre la categoría: "%s". Responde únicamente con la pregunta en formato de string.`, selection)
}

// formatManualQuestion - вопрос из ручного списка вместе с ответом для ведущего.
func formatManualQuestion(question, answer string) string {
	return fmt.Sprintf("%s\n(Respuesta: %s)", question, answer)
}
