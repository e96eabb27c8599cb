package models

const (
	// NoResultsAnswer is returned when retrieval yields no chunks.
	NoResultsAnswer = "No relevant papers found for this query."

	// FallbackAnswer is the body returned by the service when answer
	// generation fails before the generator could produce anything.
	FallbackAnswer = "I'm sorry - the AI failed to generate an answer at this time."

	// ArxivAbsURL prefixes synthesized paper links.
	ArxivAbsURL = "https://arxiv.org/abs/"
)

var (
	// ExpertPromptTemplate takes the question and the numbered evidence list.
	// Citation markers in the answer refer to positions in that list.
	ExpertPromptTemplate = `You are an expert researcher in statistical learning and regression analysis.

CRITICAL INSTRUCTIONS:
1. Answer ONLY using information from the provided papers
2. Include ALL relevant technical terminology (L1, L2, regularization, etc.)
3. Provide mathematical formulations when relevant
4. Cite sources using [1], [2], etc.
5. Be comprehensive but precise

Question: %s

Research Papers:
%s

Provide a thorough answer covering:
- Clear definitions with proper terminology
- Mathematical formulation (if applicable)
- Key properties and characteristics
- Practical implications
- Comparisons (if asked)

Answer:
`
)
