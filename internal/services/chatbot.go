package services

const ChatbotPlaceholderReply = "Thank you for your question! Our AI companion is still in training and will be available soon. Please always consult a doctor for medical advice."

// ChatbotReply ignores the question until a real assistant is available.
func ChatbotReply(string) string {
	return ChatbotPlaceholderReply
}
