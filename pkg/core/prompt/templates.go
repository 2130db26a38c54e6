package prompt

// PromptIDs contains all known prompt identifiers.
var PromptIDs = struct {
	IntelCarry string
	IntelFinal string
}{
	IntelCarry: "intel.carry",
	IntelFinal: "intel.final",
}

const carrySystemPrompt = `Você é um assistente executivo de relacionamento com clientes.
Você receberá seu entendimento acumulado das reuniões anteriores seguido do texto de uma nova seção do log de reuniões do cliente.
Atualize seu entendimento considerando a nova seção: tom emocional do cliente, decisões tomadas, compromissos assumidos, riscos e pendências.
Responda APENAS com o texto atualizado do seu entendimento, em no máximo 15 linhas, sem comentários adicionais.`

const finalSystemPrompt = `Você é um assistente executivo de relacionamento com clientes.
Você receberá seu entendimento acumulado das reuniões anteriores seguido do texto da ÚLTIMA reunião registrada.
Gere um relatório em JSON ESTRITO, exatamente com estes campos:
{
  "resumo_executivo": "string",
  "perfil_cliente": "string",
  "estrategia_relacionamento": "string",
  "checkpoints_feitos": ["string"],
  "proximos_passos": ["string"],
  "riscos_bloqueios": "string",
  "sentimento_score": 0
}
Regras obrigatórias:
- "checkpoints_feitos" e "proximos_passos" devem derivar SOMENTE do texto da última reunião. O entendimento acumulado pode informar apenas "perfil_cliente" e "estrategia_relacionamento".
- Regras do "sentimento_score" (inteiro de 0 a 10):
  * O score reflete o TOM EMOCIONAL do cliente, não a saúde do projeto ou do cronograma. Um projeto atrasado com cliente calmo e colaborativo ainda pontua alto; um projeto em dia com cliente irritado pontua baixo.
  * Na ausência de sinal forte em qualquer direção, assuma 7-8 (satisfeito/colaborativo).
  * 9-10 exige elogio explícito, entusiasmado e inequívoco ("excelente", "incrível", "encantado"). Positividade genérica ou simples cooperação limita o score em 7-8.
  * 0-6 exige sinal negativo explícito: frustração, reclamações, impaciência, atrito, hostilidade ou desengajamento. A gravidade do sinal define o valor exato dentro dessa faixa.
- Responda apenas com o JSON, sem texto antes ou depois.`

func registerBuiltins(r *Registry) {
	r.Register(&PromptTemplate{
		ID:           PromptIDs.IntelCarry,
		Name:         "Intelligence - Carry Forward",
		Role:         "carry",
		Version:      "v2",
		SystemPrompt: carrySystemPrompt,
	})
	r.Register(&PromptTemplate{
		ID:           PromptIDs.IntelFinal,
		Name:         "Intelligence - Final Report",
		Role:         "final",
		Version:      "v2",
		SystemPrompt: finalSystemPrompt,
	})
}
