package gemini

import (
	"fmt"
	"strings"
	"time"
)

// Fixed category vocabulary always offered to the model, merged with
// whatever categories the system has actually seen.
var knownCategories = []string{
	// despesas fixas
	"ALUGUEL", "AGUA", "ENERGIA", "GASOLINA", "LICENCAS", "PLANO DE SAUDE",
	"EDUCACAO", "INTERNET", "CELULAR", "SEGURO", "ACADEMIA", "CONTABILIDADE",
	"INSS", "IMPOSTO", "DIZIMO",
	// despesas variáveis
	"ALIMENTACAO", "FARMACIA", "TRANSPORTE", "CARTAO", "DENTISTA", "LAZER",
	"CUIDADOS PESSOAIS", "PRESENTES", "MERCADO", "RESTAURANTE", "DELIVERY",
	"UBER", "TAXI",
	// receitas
	"SALARIO", "PARTICULAR", "FREELANCE", "BONUS", "REEMBOLSO",
}

func categoryList(extra []string) string {
	all := append(append([]string{}, knownCategories...), extra...)
	return strings.Join(all, ", ")
}

func entryTextPrompt(text string, categories []string) string {
	return fmt.Sprintf(`Você é um assistente financeiro. Analise o texto abaixo e extraia os lançamentos financeiros.

TEXTO DO USUÁRIO:
"%s"

CATEGORIAS EXISTENTES NO SISTEMA:
%s

REGRAS:
1. Se mencionar "gastei", "paguei", "comprei", "débito" → tipo = "EXPENSE"
2. Se mencionar "recebi", "ganhei", "crédito", "salário" → tipo = "INCOME"
3. Use uma categoria existente se possível, ou crie uma nova se necessário
4. O valor deve ser um número (ex: 45.90)
5. Se não houver data específica, use a data de hoje: %s
6. Status padrão é "SETTLED" (já pago/recebido), use "PENDING" se o usuário indicar que ainda vai pagar

Responda APENAS com um JSON válido no formato:
{
  "lancamentos": [
    {
      "tipo": "EXPENSE" ou "INCOME",
      "valor": 45.90,
      "categoria": "ALIMENTACAO",
      "descricao": "Almoço no restaurante",
      "data": "2025-01-15",
      "status": "SETTLED"
    }
  ]
}`, text, categoryList(categories), time.Now().Format("2006-01-02"))
}

func entryImagePrompt(categories []string) string {
	return fmt.Sprintf(`Você é um assistente financeiro. Analise esta imagem de extrato bancário e extraia TODOS os lançamentos visíveis.

CATEGORIAS EXISTENTES NO SISTEMA:
%s

REGRAS:
1. PIX enviado, débito, pagamento → tipo = "EXPENSE"
2. PIX recebido, crédito, depósito → tipo = "INCOME"
3. Tente identificar a categoria baseada na descrição
4. Extraia a data exata se visível
5. Status padrão é "SETTLED"

Responda APENAS com um JSON válido no formato:
{
  "lancamentos": [
    {
      "tipo": "EXPENSE" ou "INCOME",
      "valor": 45.90,
      "categoria": "ALIMENTACAO",
      "descricao": "PIX para Restaurante XYZ",
      "data": "2025-01-15",
      "status": "SETTLED"
    }
  ]
}`, categoryList(categories))
}

func planTextPrompt(text string, categories []string) string {
	return fmt.Sprintf(`Você é um assistente financeiro. Analise o texto abaixo e extraia as contas futuras a pagar ou receber.

TEXTO DO USUÁRIO:
"%s"

CATEGORIAS EXISTENTES NO SISTEMA:
%s

REGRAS:
1. Contas a pagar → tipo = "EXPENSE"; valores a receber → tipo = "INCOME"
2. O valor deve ser um número (ex: 45.90)
3. Use a data de vencimento mencionada; se não houver, use o último dia do mês atual
4. Marque "recorrente": true quando a conta se repete todo mês (aluguel, internet, assinatura)

Responda APENAS com um JSON válido no formato:
{
  "contas": [
    {
      "tipo": "EXPENSE",
      "valor": 120.00,
      "categoria": "INTERNET",
      "descricao": "Mensalidade da internet",
      "dataVencimento": "2025-02-10",
      "recorrente": true
    }
  ]
}`, text, categoryList(categories))
}
