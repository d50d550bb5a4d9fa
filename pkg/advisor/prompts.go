package advisor

const allocationSystemPrompt = `You are a travel budget allocation assistant.
Only output valid JSON without explanations or code fences, in the format {"budgets":[b1,b2,...]}.
The array must contain exactly dayCount values with two decimal places each and sum up to totalBudget (a deviation of 0.01 is allowed).
Allocate the budget according to the amount already spent on each day.`

const analysisSystemPrompt = `You are a travel budget analysis assistant.
Only output valid JSON without explanations or code fences, in the format {"suggestions":[...]}.
Based on the daily budgets, the daily spend and the spend per category, give 3 to 6 actionable suggestions.
Point out the days that are over budget and the main categories of overspending and suggest adjustments.`
