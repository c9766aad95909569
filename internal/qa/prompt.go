package qa

import "fmt"

const systemPrompt = "You are an extractive question answering system. " +
	"Answer with the shortest exact span copied verbatim from the context. " +
	"Do not paraphrase or explain. If the context does not contain the answer, reply with " + noAnswerToken + "."

func userPrompt(question, context string) string {
	return fmt.Sprintf("Context:\n%s\n\nQuestion: %s", context, question)
}
