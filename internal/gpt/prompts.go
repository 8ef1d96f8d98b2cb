package gpt

// System prompts live here so wording changes are a single-file edit.
// Keep them concise; every token costs money and latency.

// PromptExtract is used when keyword matching found no menu items in the
// user's message. The model must answer with a bare JSON object mapping
// allowed item IDs to whole-number quantities.
const PromptExtract = `You extract food order items and quantities from a customer's message.

Rules:
- Respond ONLY with one JSON object. No markdown fences, no text before or after.
- Keys MUST be taken from the allowed item IDs exactly as written.
- Values are positive whole numbers. If the customer gives no number for an item, use 1.
- Leave out anything the customer did not ask for.
- If nothing matches, respond with {}.

Example: {"chicken_tikka":2,"margherita":1}`
